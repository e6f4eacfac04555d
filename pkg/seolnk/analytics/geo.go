package analytics

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Geo resolves client IPs to country names from a local MaxMind
// database. A nil *Geo is valid and resolves everything to "".
type Geo struct {
	reader *geoip2.Reader
}

// OpenGeo opens a GeoLite2/GeoIP2 database file.
func OpenGeo(path string) (*Geo, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Geo{reader: reader}, nil
}

// Country returns the English country name for an IP, or "" when the
// IP is unparseable or unknown.
func (g *Geo) Country(ip string) string {
	if g == nil || g.reader == nil {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	record, err := g.reader.Country(parsed)
	if err != nil {
		return ""
	}
	return record.Country.Names["en"]
}

// Close releases the database handle.
func (g *Geo) Close() error {
	if g == nil || g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
