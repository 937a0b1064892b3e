package abi

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrMalformedLog = errors.New("malformed log")

var LootboxABI abi.ABI

// event LootboxOpened(address indexed player, uint256 prizeTokenId, uint256 amount);
var lootboxABI = `[{"type":"event","anonymous":false,"name":"LootboxOpened","inputs":[{"type":"address","name":"player","indexed":true},{"type":"uint256","name":"prizeTokenId"},{"type":"uint256","name":"amount"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(lootboxABI))
	if err != nil {
		panic("Failed to parse lootbox abi")
	}
	LootboxABI = _abi
}

type LootboxOpenedLog struct {
	Player       common.Address // indexed
	PrizeTokenId *big.Int
	Amount       *big.Int
}

func ToLootboxOpenedLog(log *types.Log) (*LootboxOpenedLog, error) {
	if err := checkTopics(log, 2); err != nil {
		return nil, err
	}
	var opened LootboxOpenedLog
	if err := LootboxABI.UnpackIntoInterface(&opened, "LootboxOpened", log.Data); err != nil {
		return nil, err
	}
	opened.Player = common.BytesToAddress(log.Topics[1].Bytes())
	return &opened, nil
}
