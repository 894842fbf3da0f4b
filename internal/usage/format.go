package usage

import "strconv"

// FormatNumber renders v in its shortest decimal form: 120 as "120" and
// 66.5 as "66.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
