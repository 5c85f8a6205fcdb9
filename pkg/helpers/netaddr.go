package helpers

import "net"

// IsInternalIP reports whether ip is not publicly routable: loopback,
// RFC 1918 and unique-local ranges, link-local (which includes the cloud
// metadata address 169.254.169.254), unspecified and multicast.
func IsInternalIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}
