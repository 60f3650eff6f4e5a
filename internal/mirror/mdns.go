package mirror

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	serviceType = "_traceboard._tcp"
	appTag      = "traceboard"
	wsPath      = "/ws"
)

// Mirror is a live view found on the local network.
type Mirror struct {
	Instance string
	Host     string
	Port     int
	Path     string
}

// URL is the websocket address a viewer connects to.
func (m Mirror) URL() string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(m.Host, strconv.Itoa(m.Port)), m.Path)
}

// Advertise announces the mirror on the local network. The TXT record carries
// the websocket path so Browse can build the full viewer URL. Callers must
// Shutdown the returned server.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	txt := []string{"app=" + appTag, "path=" + wsPath}

	zone, err := mdns.NewMDNSService("TraceBoard on "+host, serviceType, "", "", port, nil, txt)
	if err != nil {
		return nil, fmt.Errorf("mirror service record: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("mdns responder: %w", err)
	}
	logger.Infof("Advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse queries the network for timeout and reports each mirror once.
// Responders that are not TraceBoard mirrors are skipped.
func Browse(timeout time.Duration, found func(Mirror)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		seen := make(map[string]bool)
		for e := range entries {
			m, ok := mirrorFromEntry(e)
			if !ok || seen[m.URL()] {
				continue
			}
			seen[m.URL()] = true
			found(m)
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}

func mirrorFromEntry(e *mdns.ServiceEntry) (Mirror, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Mirror{}, false
	}
	txt := parseTXT(e.InfoFields)
	if txt["app"] != appTag {
		return Mirror{}, false
	}
	path := txt["path"]
	if !strings.HasPrefix(path, "/") {
		path = wsPath
	}
	return Mirror{Instance: e.Name, Host: e.AddrV4.String(), Port: e.Port, Path: path}, true
}

// parseTXT reads key=value TXT fields. Bare keys map to "".
func parseTXT(fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		k, v, _ := strings.Cut(f, "=")
		out[strings.ToLower(k)] = v
	}
	return out
}
