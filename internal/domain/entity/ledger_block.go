package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// GenesisPreviousHash is the previous-hash value of block 0
const GenesisPreviousHash = "0000000000000000000000000000000000000000000000000000000000000000"

// LedgerBlock is one block of the append-only hash chain recording every
// significant financial event. Blocks are never updated or deleted; the chain
// is the financial history.
type LedgerBlock struct {
	// Index is the block's position in the chain, starting at 0. A unique
	// database index on this column arbitrates concurrent appends.
	Index        uint64
	PreviousHash string
	// Payload is the canonical JSON serialization of the event, exactly the
	// bytes that were hashed
	Payload   string
	Hash      string
	CreatedAt time.Time
}

// NewLedgerBlock builds the block following the given tail. A nil tail means
// this is the genesis block.
func NewLedgerBlock(tail *LedgerBlock, payload map[string]any, timeProvider coreport.TimeProvider) (*LedgerBlock, error) {
	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return nil, err
	}

	var index uint64
	previousHash := GenesisPreviousHash
	if tail != nil {
		index = tail.Index + 1
		previousHash = tail.Hash
	}

	return &LedgerBlock{
		Index:        index,
		PreviousHash: previousHash,
		Payload:      string(canonical),
		Hash:         ComputeBlockHash(index, previousHash, canonical),
		CreatedAt:    timeProvider.Now(),
	}, nil
}

// ComputeBlockHash computes the block hash over index, previous hash and the
// canonical payload bytes, joined with '|'
func ComputeBlockHash(index uint64, previousHash string, canonicalPayload []byte) string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatUint(index, 10)))
	h.Write([]byte("|"))
	h.Write([]byte(previousHash))
	h.Write([]byte("|"))
	h.Write(canonicalPayload)
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalJSON serializes a payload deterministically: object keys sorted,
// no insignificant whitespace. Re-serializing a stored payload through this
// function yields identical bytes, which is what chain verification relies on.
func CanonicalJSON(payload map[string]any) ([]byte, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger payload serialization failed", errs.ErrInternalServer)
	}
	return out, nil
}

// RecomputeHash recomputes the hash from the block's own fields after
// normalizing the stored payload through the canonical serializer
func (b *LedgerBlock) RecomputeHash() (string, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(b.Payload), &payload); err != nil {
		return "", fmt.Errorf("%w: block %d payload is not valid JSON", errs.ErrLedgerBroken, b.Index)
	}
	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return "", err
	}
	return ComputeBlockHash(b.Index, b.PreviousHash, canonical), nil
}

// VerifyLink checks the block against its predecessor (nil for genesis):
// the previous-hash linkage and the block's own hash must both hold
func (b *LedgerBlock) VerifyLink(prev *LedgerBlock) error {
	if prev == nil {
		if b.Index != 0 || b.PreviousHash != GenesisPreviousHash {
			return fmt.Errorf("%w: block %d has invalid genesis linkage", errs.ErrLedgerBroken, b.Index)
		}
	} else {
		if b.Index != prev.Index+1 {
			return fmt.Errorf("%w: block %d does not follow block %d", errs.ErrLedgerBroken, b.Index, prev.Index)
		}
		if b.PreviousHash != prev.Hash {
			return fmt.Errorf("%w: block %d previous hash mismatch", errs.ErrLedgerBroken, b.Index)
		}
	}

	recomputed, err := b.RecomputeHash()
	if err != nil {
		return err
	}
	if recomputed != b.Hash {
		return fmt.Errorf("%w: block %d hash mismatch", errs.ErrLedgerBroken, b.Index)
	}
	return nil
}
