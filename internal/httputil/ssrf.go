package httputil

import (
	"fmt"
	"net"
)

// blockedRanges lists the address classes a redirect may not land on.
// Link-local unicast covers cloud metadata endpoints (169.254.169.254).
var blockedRanges = []struct {
	label   string
	matches func(net.IP) bool
}{
	{"private IP", net.IP.IsPrivate},
	{"loopback IP", net.IP.IsLoopback},
	{"link-local IP", net.IP.IsLinkLocalUnicast},
	{"link-local multicast", net.IP.IsLinkLocalMulticast},
	{"multicast IP", net.IP.IsMulticast},
	{"unspecified IP", net.IP.IsUnspecified},
}

// ValidateIP returns an error naming host if ip is private, loopback,
// link-local, multicast or unspecified.
func ValidateIP(ip net.IP, host string) error {
	for _, r := range blockedRanges {
		if r.matches(ip) {
			return fmt.Errorf("refusing redirect to %s: %s (%s)", r.label, host, ip)
		}
	}
	return nil
}
