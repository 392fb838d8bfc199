package net

import (
	"net"

	"PageInk/internal/logging"
)

// OutgoingIP finds the address a tablet on the same network should dial.
func OutgoingIP() net.IP {
	// No packets are sent; dialing UDP only picks the route.
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return localIPFallback()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP
}

// localIPFallback is used on networks without a default route.
func localIPFallback() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	logging.WithComponent("bridge").Warn("no usable local address, falling back to loopback")
	return net.IPv4(127, 0, 0, 1)
}
