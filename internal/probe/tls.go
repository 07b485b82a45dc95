package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"webPerfAnalyzerGO/internal/models"
)

// InspectTLS performs a TLS handshake against port 443 of the URL's
// hostname using the default trust store and extracts the peer
// certificate's issuer, subject, and expiry. Non-standard ports are not
// supported; any failure returns nil.
func (a *Analyzer) InspectTLS(ctx context.Context, urlStr string) *models.TLSInfo {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		a.logger.Error("Error checking SSL", "url", urlStr, "error", err)
		return nil
	}
	host := parsed.Hostname()
	if host == "" {
		a.logger.Error("Error checking SSL", "url", urlStr, "error", errors.New("URL has no hostname"))
		return nil
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: a.config.RequestTimeout},
		Config:    &tls.Config{ServerName: host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, "443"))
	if err != nil {
		a.logger.Error("Error checking SSL", "url", urlStr, "error", err)
		return nil
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		a.logger.Error("Error checking SSL", "url", urlStr, "error", errors.New("no peer certificates"))
		return nil
	}

	return tlsInfoFromCert(state.PeerCertificates[0])
}

// tlsInfoFromCert extracts the reported fields from a peer certificate
func tlsInfoFromCert(cert *x509.Certificate) *models.TLSInfo {
	return &models.TLSInfo{
		Issuer:  distinguishedName(cert.Issuer),
		Subject: distinguishedName(cert.Subject),
		Expiry:  cert.NotAfter.UTC().Format(time.RFC1123),
	}
}

// distinguishedName flattens a DN into an attribute-name map, keeping
// only attributes that are actually present
func distinguishedName(name pkix.Name) map[string]string {
	dn := make(map[string]string)
	if name.CommonName != "" {
		dn["commonName"] = name.CommonName
	}
	if len(name.Organization) > 0 {
		dn["organizationName"] = strings.Join(name.Organization, ", ")
	}
	if len(name.OrganizationalUnit) > 0 {
		dn["organizationalUnitName"] = strings.Join(name.OrganizationalUnit, ", ")
	}
	if len(name.Country) > 0 {
		dn["countryName"] = strings.Join(name.Country, ", ")
	}
	if len(name.Province) > 0 {
		dn["stateOrProvinceName"] = strings.Join(name.Province, ", ")
	}
	if len(name.Locality) > 0 {
		dn["localityName"] = strings.Join(name.Locality, ", ")
	}
	return dn
}
