package entity

// Network describes the ledger the client talks to and the contract it plays on.
type Network struct {
	Name          string `json:"name"`
	ChainID       string `json:"chain_id"`
	URL           string `json:"url"`
	Contract      string `json:"contract"`
	AddressPrefix string `json:"address_prefix"`
	BaseDenom     string `json:"base_denom"`
	CurrencyName  string `json:"currency_name"`
}

// AppConfig is the persisted client configuration. A stored value is only trusted while its
// StorageVersion matches the one the client ships with.
type AppConfig struct {
	StorageVersion  int     `json:"storage_version"`
	Network         Network `json:"network"`
	ConnectedWallet bool    `json:"connected_wallet"`
}
