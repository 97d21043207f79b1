package resolver

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/tokenized/vtl/bitcoin"
	"github.com/tokenized/vtl/chain"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/quantile"
	"github.com/tokenized/vtl/vtl"
)

type failingFeeCalculator struct{}

func (failingFeeCalculator) NormalizedFeeAt(height int32) (int64, error) {
	return 0, errors.New("fee market unavailable")
}

func buildFixture(t *testing.T, duration uint64) (*chain.MockClient, vtl.LockIdentifier, bitcoin.Hash20) {
	t.Helper()

	var owner bitcoin.Hash20
	copy(owner[:], []byte("01234567890123456789"))

	redeemScript := vtl.BuildRedeemScript(duration, owner)
	p2sh := bitcoin.P2SHLockingScript(redeemScript)

	client := chain.NewMockClient(1000, 0)
	client.AddBlock("block-1", &chain.BlockInfo{Height: 500})
	client.AddTransaction(&chain.Transaction{
		TransactionID: "tx-1",
		Outputs: []chain.Output{
			{Value: 1_000_000, LockingScript: p2sh},
		},
		Confirmations: 1,
		BlockHash:     "block-1",
	})

	id := vtl.LockIdentifier{
		TransactionID:   "tx-1",
		RedeemScriptHex: hex.EncodeToString(redeemScript),
	}
	return client, id, owner
}

func TestResolveSuccess(t *testing.T) {
	params := protocol.NewParameters()
	client, id, owner := buildFixture(t, params.LockPeriodInBlocks)

	r := New(client, params, protocol.NewStaticFeeCalculator(5))

	lock, err := r.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve failed : %s", err)
	}

	if lock.AmountLocked != 1_000_000 {
		t.Errorf("got amount %d, want 1000000", lock.AmountLocked)
	}
	if lock.Owner != owner {
		t.Errorf("owner mismatch")
	}
	if lock.UnlockTransactionTime-lock.LockTransactionTime != int32(params.LockPeriodInBlocks) {
		t.Errorf("got duration %d, want %d",
			lock.UnlockTransactionTime-lock.LockTransactionTime, params.LockPeriodInBlocks)
	}
}

func TestResolveNotConfirmed(t *testing.T) {
	params := protocol.NewParameters()
	client, id, _ := buildFixture(t, params.LockPeriodInBlocks)

	tx, _ := client.GetRawTransaction(context.Background(), "tx-1")
	tx.Confirmations = 0

	r := New(client, params, protocol.NewStaticFeeCalculator(5))
	_, err := r.Resolve(context.Background(), id)
	if err == nil || vtl.Code(err) != "lock_resolver_transaction_not_confirmed" {
		t.Fatalf("got %v, want transaction_not_confirmed", err)
	}
}

func TestResolveDurationMismatch(t *testing.T) {
	params := protocol.NewParameters()
	client, id, _ := buildFixture(t, params.LockPeriodInBlocks+1)

	r := New(client, params, protocol.NewStaticFeeCalculator(5))
	_, err := r.Resolve(context.Background(), id)
	if err == nil || vtl.Code(err) != "lock_resolver_duration_is_invalid" {
		t.Fatalf("got %v, want duration_is_invalid", err)
	}
}

func TestResolveNotPayingToScript(t *testing.T) {
	params := protocol.NewParameters()
	client, id, _ := buildFixture(t, params.LockPeriodInBlocks)

	tx, _ := client.GetRawTransaction(context.Background(), "tx-1")
	tx.Outputs[0].Value = 1

	var other bitcoin.Hash20
	copy(other[:], []byte("99999999999999999999"))
	tx.Outputs[0].LockingScript = bitcoin.P2SHLockingScript(vtl.BuildRedeemScript(1, other))

	r := New(client, params, protocol.NewStaticFeeCalculator(5))
	_, err := r.Resolve(context.Background(), id)
	if err == nil || vtl.Code(err) != "lock_resolver_transaction_is_not_paying_to_script" {
		t.Fatalf("got %v, want transaction_is_not_paying_to_script", err)
	}
}

func TestResolveFeeCalculationFailed(t *testing.T) {
	params := protocol.NewParameters()
	client, id, _ := buildFixture(t, params.LockPeriodInBlocks)

	r := New(client, params, failingFeeCalculator{})
	_, err := r.Resolve(context.Background(), id)
	if err == nil || vtl.Code(err) != "lock_resolver_fee_calculation_failed" {
		t.Fatalf("got %v, want fee_calculation_failed", err)
	}
}

func TestResolveUsesQuantileFeeCalculator(t *testing.T) {
	params := protocol.NewParameters()
	client, id, _ := buildFixture(t, params.LockPeriodInBlocks)

	approximator := quantile.NewValueApproximator(2, 1024)
	window := quantile.NewSlidingWindow(approximator, 4)
	feeCalculator := protocol.NewQuantileFeeCalculator(window, 0.5)
	feeCalculator.Record([]int64{10, 20, 30})

	r := New(client, params, feeCalculator)

	lock, err := r.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve failed : %s", err)
	}
	if lock.NormalizedFee <= 0 {
		t.Fatalf("got normalized fee %d, want > 0", lock.NormalizedFee)
	}
}

func TestResolveScriptRejectsNonCSVOpcode(t *testing.T) {
	params := protocol.NewParameters()

	var owner bitcoin.Hash20
	copy(owner[:], []byte("01234567890123456789"))

	redeemScript := vtl.BuildRedeemScript(params.LockPeriodInBlocks, owner)
	// Swap OP_CSV (0xb2) for OP_NOP2 (0xb1): the script no longer matches the lock template.
	for i, b := range redeemScript {
		if b == bitcoin.OP_CSV {
			redeemScript[i] = bitcoin.OP_NOP2
			break
		}
	}

	client := chain.NewMockClient(1000, 0)
	client.AddBlock("block-1", &chain.BlockInfo{Height: 500})
	client.AddTransaction(&chain.Transaction{
		TransactionID: "tx-1",
		Outputs: []chain.Output{
			{Value: 1_000_000, LockingScript: bitcoin.P2SHLockingScript(redeemScript)},
		},
		Confirmations: 1,
		BlockHash:     "block-1",
	})

	id := vtl.LockIdentifier{
		TransactionID:   "tx-1",
		RedeemScriptHex: hex.EncodeToString(redeemScript),
	}

	r := New(client, params, protocol.NewStaticFeeCalculator(5))
	_, err := r.Resolve(context.Background(), id)
	if err == nil || vtl.Code(err) != "lock_resolver_redeem_script_is_not_lock" {
		t.Fatalf("got %v, want redeem_script_is_not_lock", err)
	}
}
