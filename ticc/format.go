package ticc

import "fmt"

// FormatBytes renders a byte count the way the build logs do: whole
// bytes below 1 KB, otherwise KB or MB with two decimals.
func FormatBytes(n int64) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
