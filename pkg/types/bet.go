package types

import "github.com/gagliardetto/solana-go"

// Bet is a decoded bet account. One account per stake; claimed at most once.
type Bet struct {
	Pubkey solana.PublicKey `json:"pubkey"`
	User   solana.PublicKey `json:"user"`
	Market solana.PublicKey `json:"market"`

	// Amount staked, in lamports.
	Amount uint64 `json:"amount"`

	// Direction true means up/yes.
	Direction bool `json:"direction"`

	Claimed bool `json:"claimed"`
}
