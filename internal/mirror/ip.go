package mirror

import (
	"net"
)

// GetOutgoingIP finds the preferred local IP address to share with viewers.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route to the internet, look at the interfaces instead
		return firstIPv4(), nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// ShareURL is the websocket address shown in the status bar.
func ShareURL(port int) string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return Mirror{Host: ip, Port: port, Path: wsPath}.URL()
}

func firstIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4().String()
			}
		}
	}
	logger.Warn("No suitable local IP found, share link may not work")
	return "127.0.0.1"
}
