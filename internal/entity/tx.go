package entity

import "time"

// Tx is a contract execution carrying exactly one command and optional escrowed funds.
type Tx struct {
	ChainID  string  `json:"chain_id"`
	Sender   string  `json:"sender"`
	Contract string  `json:"contract"`
	Msg      Command `json:"msg"`
	Funds    Coins   `json:"funds"`
}

// SignedTx is a Tx plus the signer's compressed public key and signature, both hex encoded.
type SignedTx struct {
	Tx        Tx     `json:"tx"`
	PubKey    string `json:"pub_key"`
	Signature string `json:"signature"`
}

// TxInfo is the finalized result of a transaction. Timestamp is RFC 3339, empty until the tx is in a block.
type TxInfo struct {
	Hash      string `json:"txhash"`
	Height    int64  `json:"height,string"`
	Code      uint32 `json:"code"`
	RawLog    string `json:"raw_log"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (that *TxInfo) Succeeded() bool {
	return that.Code == 0
}

// PendingTx is a broadcast transaction whose settlement was never confirmed.
type PendingTx struct {
	Hash     string      `json:"hash"`
	Command  CommandKind `json:"command"`
	Game     GameKey     `json:"game"`
	QueuedAt time.Time   `json:"queued_at"`
}
