// Package timeline holds the hand-curated narrative timeline for the case.
// The dataset is authoritative and is not derived from the source document.
package timeline

import (
	"time"

	"chronomap/pkg/model"
)

// at resolves a clock time against the fixed case date.
func at(hour, minute int) time.Time {
	return model.CaseDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Events returns the curated timeline in insertion order. The animation
// controller sorts by timestamp (stable, ties keep insertion order); this
// function stays a plain data source.
func Events() []model.TimelineEvent {
	return []model.TimelineEvent{
		{
			Label:       "6:00 AM",
			Description: "Subject A leaves home, tells family she is hiking the ridge loop.",
			Lat:         39.2041, Lon: -86.5311,
			Time:     at(6, 0),
			Category: model.CategoryNarrative,
		},
		{
			Label:       "6:42 AM",
			Description: "Subject A's phone pings the Route 45 tower, moving east.",
			Lat:         39.2012, Lon: -86.5120,
			Time:     at(6, 42),
			Category: model.CategoryPhoneA,
		},
		{
			Label:       "7:15 AM",
			Description: "ATM withdrawal at the Crossgate branch, $60, camera confirms Subject A alone.",
			Lat:         39.1968, Lon: -86.4987,
			Time:     at(7, 15),
			Category: model.CategoryEvidence,
		},
		{
			Label:       "7:45 AM",
			Description: "Car parked at the north trailhead lot. Dashcam on a passing truck captures the plate.",
			Lat:         39.1921, Lon: -86.4893,
			Time:     at(7, 45),
			Category: model.CategoryTimeline,
		},
		{
			Label:       "8:00 AM",
			Description: "Trailhead register signed. Last verified handwriting sample.",
			Lat:         39.1917, Lon: -86.4881,
			Time:     at(8, 0),
			Category: model.CategoryTimeline,
		},
		{
			Label:       "8:34 AM",
			Description: "Subject A's phone pings the ridge tower, consistent with the loop trail.",
			Lat:         39.1885, Lon: -86.4812,
			Time:     at(8, 34),
			Category: model.CategoryPhoneA,
		},
		{
			Label:       "8:34 AM",
			Description: "Subject B's phone pings the same tower within the same minute.",
			Lat:         39.1883, Lon: -86.4815,
			Time:     at(8, 34),
			Category: model.CategoryPhoneB,
		},
		{
			Label:       "9:02 AM",
			Description: "Photo posted from Subject A's phone: overlook at the south spur.",
			Lat:         39.1849, Lon: -86.4766,
			Time:     at(9, 2),
			Category: model.CategoryPhoneA,
		},
		{
			Label:       "9:20 AM",
			Description: "Subject B's truck seen on the fire road by a mushroom forager.",
			Lat:         39.1830, Lon: -86.4722,
			Time:     at(9, 20),
			Category: model.CategoryNarrative,
		},
		{
			Label:       "9:41 AM",
			Description: "Subject A's phone goes dark. No further pings on any tower.",
			Lat:         39.1822, Lon: -86.4701,
			Time:     at(9, 41),
			Category: model.CategoryPhoneA,
		},
		{
			Label:       "10:30 AM",
			Description: "Subject B's phone reconnects on the far side of the ridge, moving fast.",
			Lat:         39.1874, Lon: -86.4588,
			Time:     at(10, 30),
			Category: model.CategoryPhoneB,
		},
		{
			Label:       "12:05 PM",
			Description: "Witness reports shouting heard near the creek crossing around noon.",
			Lat:         39.1811, Lon: -86.4655,
			Time:     at(12, 5),
			Category: model.CategoryNarrative,
		},
		{
			Label:       "2:13 PM",
			Description: "Water bottle matching Subject A's recovered under the creek bridge.",
			Lat:         39.1808, Lon: -86.4652,
			Time:     at(14, 13),
			Category: model.CategoryEvidence,
		},
		{
			Label:       "4:50 PM",
			Description: "Family reports Subject A overdue. Deputies dispatched to the trailhead.",
			Lat:         39.1921, Lon: -86.4893,
			Time:     at(16, 50),
			Category: model.CategoryTimeline,
		},
		{
			Label:       "6:20 PM",
			Description: "Search dogs lose the scent at the fire road junction.",
			Lat:         39.1826, Lon: -86.4710,
			Time:     at(18, 20),
			Category: model.CategoryNarrative,
		},
		{
			Label:       "8:45 PM",
			Description: "Unidentified vehicle on the county road camera, lights off.",
			Lat:         39.1902, Lon: -86.4549,
			Time:     at(20, 45),
			Category: model.CategoryUnknown,
		},
	}
}
