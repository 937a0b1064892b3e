package abi

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	operator = common.HexToAddress("0x00000000000000000000000000000000000000ff")
	player   = common.HexToAddress("0x5324a98b506F3265c500f978F3943A1fC6A55fa4")
)

func TestTransferSingleLogParsing(t *testing.T) {
	req := require.New(t)
	ev := ERC1155TokenABI.Events["TransferSingle"]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(1), big.NewInt(25))
	req.NoError(err)

	l, err := ToErc1155TransferSingleLog(&types.Log{
		Topics: []common.Hash{ev.ID, operator.Hash(), common.Hash{}, player.Hash()},
		Data:   data,
	})
	req.NoError(err)
	req.Equal(&Erc1155TransferSingleLog{
		Operator: operator,
		From:     common.Address{},
		To:       player,
		Id:       big.NewInt(1),
		Value:    big.NewInt(25),
	}, l)
}

func TestTransferBatchLogParsing(t *testing.T) {
	req := require.New(t)
	ev := ERC1155TokenABI.Events["TransferBatch"]
	data, err := ev.Inputs.NonIndexed().Pack(
		[]*big.Int{big.NewInt(3), big.NewInt(2)},
		[]*big.Int{big.NewInt(100), big.NewInt(1)},
	)
	req.NoError(err)

	l, err := ToErc1155TransferBatchLog(&types.Log{
		Topics: []common.Hash{ev.ID, operator.Hash(), player.Hash(), common.Hash{}},
		Data:   data,
	})
	req.NoError(err)
	req.Equal(player, l.From)
	req.Equal(common.Address{}, l.To)
	req.Equal([]*big.Int{big.NewInt(3), big.NewInt(2)}, l.Ids)
	req.Equal([]*big.Int{big.NewInt(100), big.NewInt(1)}, l.Values)
}

func TestLootboxOpenedLogParsing(t *testing.T) {
	req := require.New(t)
	ev := LootboxABI.Events["LootboxOpened"]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(2), big.NewInt(1))
	req.NoError(err)

	l, err := ToLootboxOpenedLog(&types.Log{
		Topics: []common.Hash{ev.ID, player.Hash()},
		Data:   data,
	})
	req.NoError(err)
	req.Equal(&LootboxOpenedLog{
		Player:       player,
		PrizeTokenId: big.NewInt(2),
		Amount:       big.NewInt(1),
	}, l)
}

func TestMalformedLog(t *testing.T) {
	req := require.New(t)

	_, err := ToLootboxOpenedLog(&types.Log{Topics: []common.Hash{LootboxABI.Events["LootboxOpened"].ID}})
	req.True(errors.Is(err, ErrMalformedLog))

	_, err = ToErc1155TransferSingleLog(&types.Log{
		Topics: []common.Hash{ERC1155TokenABI.Events["TransferSingle"].ID, operator.Hash(), player.Hash(), player.Hash()},
		Data:   []byte{1, 2, 3},
	})
	req.Error(err)
}

func TestTransferBatchUnevenLengths(t *testing.T) {
	req := require.New(t)
	ev := ERC1155TokenABI.Events["TransferBatch"]
	data, err := ev.Inputs.NonIndexed().Pack(
		[]*big.Int{big.NewInt(3), big.NewInt(2)},
		[]*big.Int{big.NewInt(100)},
	)
	req.NoError(err)

	_, err = ToErc1155TransferBatchLog(&types.Log{
		Topics: []common.Hash{ev.ID, operator.Hash(), player.Hash(), common.Hash{}},
		Data:   data,
	})
	req.True(errors.Is(err, ErrMalformedLog))
}
