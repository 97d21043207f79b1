// Package resolver implements the Lock Resolver. It is purely functional over
// (identifier, chain snapshot, protocol parameters) and mutates no state.
package resolver

import (
	"context"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/bitcoin"
	"github.com/tokenized/vtl/chain"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/vtl"
)

// Resolver turns a LockIdentifier into the authoritative ValueTimeLock it names, consulting the
// Chain Client and protocol Parameters along the way. It holds no mutable state.
type Resolver struct {
	client        chain.Client
	parameters    protocol.Parameters
	feeCalculator protocol.FeeCalculator
}

func New(client chain.Client, parameters protocol.Parameters,
	feeCalculator protocol.FeeCalculator) *Resolver {
	return &Resolver{
		client:        client,
		parameters:    parameters,
		feeCalculator: feeCalculator,
	}
}

// Resolve runs the seven-step verification protocol against id, returning the resolved
// ValueTimeLock or one of the boundary errors from vtl.errors.go.
func (r *Resolver) Resolve(ctx context.Context, id vtl.LockIdentifier) (*vtl.ValueTimeLock, error) {
	redeemScriptBytes, err := hex.DecodeString(id.RedeemScriptHex)
	if err != nil {
		return nil, vtl.NewRedeemScriptInvalidError(err.Error())
	}

	redeemScript, err := vtl.ParseRedeemScript(bitcoin.Script(redeemScriptBytes))
	if err != nil {
		if errors.Cause(err) == vtl.ErrRedeemScriptIsNotLock {
			return nil, vtl.NewRedeemScriptIsNotLockError(err.Error())
		}
		return nil, vtl.NewRedeemScriptInvalidError(err.Error())
	}

	tx, err := r.client.GetRawTransaction(ctx, id.TransactionID)
	if err != nil {
		return nil, vtl.NewTransactionNotFoundError(err.Error())
	}

	if tx.Confirmations <= 0 {
		return nil, vtl.NewTransactionNotConfirmedError(id.TransactionID)
	}

	blockInfo, err := r.client.GetBlockInfo(ctx, tx.BlockHash)
	if err != nil {
		return nil, vtl.NewTransactionNotFoundError(err.Error())
	}
	lockStartBlock := blockInfo.Height

	p2sh := bitcoin.P2SHLockingScript(bitcoin.Script(redeemScriptBytes))
	if len(tx.Outputs) == 0 || !tx.Outputs[0].LockingScript.Equal(p2sh) {
		return nil, vtl.NewTransactionIsNotPayingToScriptError(id.TransactionID)
	}
	amountLocked := tx.Outputs[0].Value

	permittedDuration := r.parameters.DurationInBlocksAt(lockStartBlock)
	if permittedDuration != redeemScript.DurationInBlocks {
		return nil, vtl.NewDurationIsInvalidError("duration does not match protocol parameters")
	}

	normalizedFee, err := r.feeCalculator.NormalizedFeeAt(lockStartBlock)
	if err != nil {
		return nil, vtl.NewFeeCalculationFailedError(err.Error())
	}

	return &vtl.ValueTimeLock{
		Identifier:            id.TransactionID,
		AmountLocked:          amountLocked,
		Owner:                 redeemScript.OwnerPubKeyHash,
		LockTransactionTime:   lockStartBlock,
		UnlockTransactionTime: lockStartBlock + int32(redeemScript.DurationInBlocks),
		NormalizedFee:         normalizedFee,
	}, nil
}
