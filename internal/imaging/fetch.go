// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheSize is how many normalized pictures stay in memory.
	DefaultCacheSize = 128

	// maxDownloadBytes caps a single picture download.
	maxDownloadBytes = 10 << 20
)

// ErrNotFetchable is returned for references that are not http(s) URLs,
// such as an image query that could not be resolved at ingestion.
var ErrNotFetchable = errors.New("imaging: reference is not an http(s) URL")

// ErrBlockedHost is returned when a picture URL points at a loopback,
// private or link-local address.
var ErrBlockedHost = fmt.Errorf("%w: host is not public", ErrNotFetchable)

// Fetcher downloads and normalizes pictures, keeping recent results in an
// in-process LRU. Concurrent requests for the same URL share one download.
// All methods are safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	cache    *lru.Cache[string, Picture]
	group    singleflight.Group
	maxWidth int

	// allowPrivate disables the public address check. Tests serve
	// pictures from loopback.
	allowPrivate bool
}

// NewFetcher creates a Fetcher with an LRU of cacheSize entries.
// cacheSize <= 0 uses DefaultCacheSize.
func NewFetcher(cacheSize int) (*Fetcher, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, Picture](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("imaging: create cache: %w", err)
	}
	f := &Fetcher{
		cache:    cache,
		maxWidth: MaxWidth,
	}

	// Every connection, redirects included, is checked after DNS
	// resolution, so proxies are disabled.
	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: f.checkAddress}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	f.client = &http.Client{Timeout: 20 * time.Second, Transport: transport}
	return f, nil
}

// Fetch returns the normalized picture behind rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Picture, error) {
	if !fetchable(rawURL) {
		return Picture{}, ErrNotFetchable
	}

	if pic, ok := f.cache.Get(rawURL); ok {
		slog.Debug("picture cache hit", "url", rawURL)
		return pic, nil
	}

	// The download is shared, so it must not die with the caller that
	// started it. The client timeout still bounds it.
	dl := context.WithoutCancel(ctx)
	ch := f.group.DoChan(rawURL, func() (any, error) {
		data, err := f.download(dl, rawURL)
		if err != nil {
			return nil, err
		}
		pic, err := Normalize(data, f.maxWidth)
		if err != nil {
			return nil, err
		}
		f.cache.Add(rawURL, pic)
		return pic, nil
	})

	select {
	case <-ctx.Done():
		return Picture{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Picture{}, res.Err
		}
		if res.Shared {
			slog.Debug("picture download shared", "url", rawURL)
		}
		return res.Val.(Picture), nil
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("imaging: request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imaging: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imaging: download %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imaging: read body: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("imaging: picture exceeds %d bytes", maxDownloadBytes)
	}
	return data, nil
}

// fetchable reports whether ref is an absolute http or https URL.
func fetchable(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// checkAddress rejects connections to non-public addresses.
func (f *Fetcher) checkAddress(_, address string, _ syscall.RawConn) error {
	if f.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("imaging: dial address %q: %w", address, err)
	}
	ip := net.ParseIP(host)
	if ip == nil || !publicIP(ip) {
		return fmt.Errorf("%w (%s)", ErrBlockedHost, host)
	}
	return nil
}

// cgnat is the shared address space of RFC 6598.
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// publicIP reports whether ip is routable on the public internet.
func publicIP(ip net.IP) bool {
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case cgnat.Contains(ip):
		return false
	}
	return true
}
