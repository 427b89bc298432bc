package domain

// Network describes a single chain endpoint known to the tool, either
// a well-known public network or one declared in configuration.
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId,omitempty"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// NetworkTarget pairs the two layers a deployment session talks to:
// the settlement layer and the rollup it anchors.
type NetworkTarget struct {
	Name string `json:"name"`
	// L1 is either a well-known network name (resolved to a default
	// endpoint) or a direct RPC URL.
	L1 string `json:"l1"`
	// L2 is always a direct RPC URL; there is no named shortcut for
	// rollup endpoints.
	L2 string `json:"l2"`
}
