// Package scale classifies scalar space weather readings into severity
// buckets with an associated display palette.
package scale

import "auroracast/internal/models"

// Bucket is a severity band. The zero value is the quiet baseline and the
// ordering of the constants is the severity ordering.
type Bucket int

const (
	Gray Bucket = iota
	Yellow
	Orange
	Red
	Purple
	Pink
)

// String returns the palette key for the bucket
func (b Bucket) String() string {
	switch b {
	case Gray:
		return "gray"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Red:
		return "red"
	case Purple:
		return "purple"
	case Pink:
		return "pink"
	default:
		return "gray"
	}
}

// Severity returns the numeric rank of the bucket, baseline 0
func (b Bucket) Severity() int {
	if b < Gray || b > Pink {
		return 0
	}
	return int(b)
}

// Buckets lists every bucket in ascending severity order
func Buckets() []Bucket {
	return []Bucket{Gray, Yellow, Orange, Red, Purple, Pink}
}

// ParseBucket resolves a palette key back to its bucket. Unknown keys map
// to the quiet baseline.
func ParseBucket(name string) Bucket {
	for _, b := range Buckets() {
		if b.String() == name {
			return b
		}
	}
	return Gray
}

// Color returns the display palette entry for the bucket. The mapping is
// exhaustive over the enumeration; unknown values fall back to gray.
func (b Bucket) Color() models.ColorSet {
	switch b {
	case Yellow:
		return models.ColorSet{
			Solid: "rgb(250, 204, 21)",
			Semi:  "rgba(250, 204, 21, 0.2)",
			Trans: "rgba(250, 204, 21, 0)",
		}
	case Orange:
		return models.ColorSet{
			Solid: "rgb(251, 146, 60)",
			Semi:  "rgba(251, 146, 60, 0.2)",
			Trans: "rgba(251, 146, 60, 0)",
		}
	case Red:
		return models.ColorSet{
			Solid: "rgb(248, 113, 113)",
			Semi:  "rgba(248, 113, 113, 0.2)",
			Trans: "rgba(248, 113, 113, 0)",
		}
	case Purple:
		return models.ColorSet{
			Solid: "rgb(192, 132, 252)",
			Semi:  "rgba(192, 132, 252, 0.2)",
			Trans: "rgba(192, 132, 252, 0)",
		}
	case Pink:
		return models.ColorSet{
			Solid: "rgb(244, 114, 182)",
			Semi:  "rgba(244, 114, 182, 0.2)",
			Trans: "rgba(244, 114, 182, 0)",
		}
	default:
		return models.ColorSet{
			Solid: "rgb(156, 163, 175)",
			Semi:  "rgba(156, 163, 175, 0.2)",
			Trans: "rgba(156, 163, 175, 0)",
		}
	}
}
