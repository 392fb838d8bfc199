package net

import (
	"fmt"
	"net"

	"github.com/hashicorp/mdns"
)

const serviceType = "_pageink._tcp"

// newService describes the bridge for mDNS. host must be fully qualified
// or empty for the OS hostname; nil ips are looked up from host.
func newService(instance, host string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	service, err := mdns.NewMDNSService(instance, serviceType, "", host, port, ips, []string{"path=" + InputPath})
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}
	return service, nil
}

// Advertise announces the input bridge on port until the returned server
// is shut down.
func Advertise(instance string, port int, ips []net.IP) (*mdns.Server, error) {
	service, err := newService(instance, "", port, ips)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}
	return server, nil
}
