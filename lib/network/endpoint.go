package network

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"boscoin.io/tokenvote/lib/errors"
)

const DefaultNetwork = "ropsten"

// KnownNetworks maps network names to public JSON-RPC endpoints.
var KnownNetworks = map[string]string{
	"mainnet":   "https://cloudflare-eth.com",
	"ropsten":   "https://rpc.ankr.com/eth_ropsten",
	"sepolia":   "https://rpc.sepolia.org",
	"holesky":   "https://ethereum-holesky-rpc.publicnode.com",
	"localhost": "http://127.0.0.1:8545",
	"hardhat":   "http://127.0.0.1:8545",
}

// ResolveEndpoint accepts a known network name or a http(s), ws(s) or ipc
// endpoint.
func ResolveEndpoint(selector string) (name, endpoint string, err error) {
	selector = strings.TrimSpace(selector)
	if len(selector) < 1 {
		selector = DefaultNetwork
	}

	if e, found := KnownNetworks[strings.ToLower(selector)]; found {
		return strings.ToLower(selector), e, nil
	}

	if strings.HasSuffix(selector, ".ipc") {
		return filepath.Base(selector), selector, nil
	}

	var u *url.URL
	if u, err = url.Parse(selector); err != nil {
		err = errors.UnknownNetwork.Wrap(err).SetData("network", selector)
		return
	}

	switch u.Scheme {
	case "http", "https", "ws", "wss":
		if len(u.Host) < 1 {
			break
		}
		return u.Host, selector, nil
	}

	err = errors.UnknownNetwork.Clone().
		SetData("network", selector).
		SetData("known", KnownNetworkNames())

	return
}

func KnownNetworkNames() []string {
	var names []string
	for name := range KnownNetworks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func isHTTP(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}
