package agents

import (
  "strconv"
)

// IntensityLabel maps a readiness score to a workout intensity bucket.
// Boundary values land in the lower band (5.0 is light, 6.0 is moderate);
// anything outside [1,10] reports moderate.
func IntensityLabel(score float64) string {
  switch {
  case score < 1 || score > 10:
    return "moderate"
  case score <= 3:
    return "rest"
  case score <= 5:
    return "light"
  case score <= 7:
    return "moderate"
  default:
    return "high"
  }
}

// formatScore renders 8.7 as "8.7", not "8.70".
func formatScore(score float64) string {
  return strconv.FormatFloat(score, 'f', -1, 64)
}
