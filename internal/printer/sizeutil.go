package printer

import "fmt"

// FormatBytes returns a human-readable byte size string.
// Examples: "0 B", "512 B", "1.5 KB", "700.0 MB".
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}

	const kb = 1024
	units := []string{"KB", "MB", "GB", "TB"}

	if bytes < kb {
		return fmt.Sprintf("%d B", bytes)
	}

	size := float64(bytes)
	unit := ""
	for _, u := range units {
		size /= kb
		unit = u
		if size < kb {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}
