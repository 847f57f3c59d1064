package snmpval

import "fmt"

// FormatInterfaceSpeed renders an ifSpeed/ifHighSpeed-style Gauge32 (bits
// per second) as a human-readable rate, e.g. "1.00 Gbps", "100.00 Mbps".
func FormatInterfaceSpeed(bitsPerSecond uint32) string {
	switch {
	case bitsPerSecond >= 1_000_000_000:
		return fmt.Sprintf("%.2f Gbps", float64(bitsPerSecond)/1_000_000_000)
	case bitsPerSecond >= 1_000_000:
		return fmt.Sprintf("%.2f Mbps", float64(bitsPerSecond)/1_000_000)
	case bitsPerSecond >= 1_000:
		return fmt.Sprintf("%.2f Kbps", float64(bitsPerSecond)/1_000)
	default:
		return fmt.Sprintf("%d bps", bitsPerSecond)
	}
}
