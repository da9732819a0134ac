package round

import (
	"fmt"
	"math"
)

// FormatElapsed renders seconds as MM:SS:mmm. Minutes are not capped.
func FormatElapsed(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	// the epsilon keeps 61.234 from flooring to 61.233
	ms := int64(math.Floor(seconds*1000 + 1e-6))
	return fmt.Sprintf("%02d:%02d:%03d", ms/60000, (ms/1000)%60, ms%1000)
}
