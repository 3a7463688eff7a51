package types

import (
	"crypto/sha256"
	"encoding/binary"
	"time"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// ScorePayload is the canonical content a score update proof must bind:
// the scored identity, the three sub-scores, and the coarse time window the
// update was produced in.
type ScorePayload struct {
	Address         string
	Quality         uint32
	Reliability     uint32
	Professionalism uint32
	Window          time.Time
}

// Bytes returns the canonical signing bytes for the payload.
func (p ScorePayload) Bytes() []byte {
	buf := make([]byte, 0, len(p.Address)+4*3+8)
	buf = append(buf, []byte(p.Address)...)
	buf = binary.BigEndian.AppendUint32(buf, p.Quality)
	buf = binary.BigEndian.AppendUint32(buf, p.Reliability)
	buf = binary.BigEndian.AppendUint32(buf, p.Professionalism)
	buf = binary.BigEndian.AppendUint64(buf, uint64(p.Window.Unix()))
	digest := sha256.Sum256(buf)
	return digest[:]
}

// ScoreVerifier checks a proof produced by the off-chain scoring service.
// The concrete signature scheme is a collaborator concern; the keeper only
// depends on this predicate.
type ScoreVerifier interface {
	Verify(proof []byte, payload ScorePayload) bool
}

// PubKeyScoreVerifier verifies proofs as signatures over the canonical
// payload bytes, using registered scorer public keys keyed by the scorer's
// account address.
type PubKeyScoreVerifier struct {
	keys map[string]cryptotypes.PubKey
}

// NewPubKeyScoreVerifier builds a verifier from scorer address -> pubkey
// registrations.
func NewPubKeyScoreVerifier(keys map[string]cryptotypes.PubKey) *PubKeyScoreVerifier {
	if keys == nil {
		keys = map[string]cryptotypes.PubKey{}
	}
	return &PubKeyScoreVerifier{keys: keys}
}

// Register adds or replaces the public key for a scorer address.
func (v *PubKeyScoreVerifier) Register(address string, key cryptotypes.PubKey) {
	v.keys[address] = key
}

// Verify checks the proof against every registered scorer key. Any valid
// scorer signature over the payload is accepted.
func (v *PubKeyScoreVerifier) Verify(proof []byte, payload ScorePayload) bool {
	if len(proof) == 0 {
		return false
	}
	msg := payload.Bytes()
	for _, key := range v.keys {
		if key.VerifySignature(msg, proof) {
			return true
		}
	}
	return false
}
