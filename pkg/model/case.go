package model

import "time"

// CaseDate is the single calendar day every timestamp in the dataset is
// anchored to. Source descriptions and the curated timeline only carry
// clock times; they are all resolved against this date.
var CaseDate = time.Date(2019, time.August, 24, 0, 0, 0, 0, time.UTC)
