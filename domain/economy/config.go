package economy

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/gameanalytics/domain"
)

const (
	TokenIdGoldCoin             domain.TokenId = 0
	TokenIdLegendarySword       domain.TokenId = 1
	TokenIdEpicGoldenChestplate domain.TokenId = 2
)

// Token is one entry of the closed token registry.
type Token struct {
	Id        domain.TokenId  `json:"tokenId"`
	Name      string          `json:"name"`
	Rarity    string          `json:"rarity"`
	UnitValue decimal.Decimal `json:"unitValue"`
}

// Config holds every constant the aggregation depends on. The zero value is not usable,
// start from DefaultConfig.
type Config struct {
	// Tokens is the registry in display order
	Tokens []Token
	// LootboxPrice is the revenue booked per opened lootbox, in the settlement currency
	LootboxPrice decimal.Decimal

	Days            int
	LeaderboardSize int
	WhaleListSize   int
	RecentLimit     int
	RecentPerSource int

	// percentages of the positive supply
	WhaleThreshold   float64
	DolphinThreshold float64

	// Location buckets days and hours
	Location *time.Location
}

func DefaultTokens() []Token {
	return []Token{
		{Id: TokenIdGoldCoin, Name: "Gold Coin", Rarity: "common", UnitValue: decimal.RequireFromString("0.001")},
		{Id: TokenIdLegendarySword, Name: "Legendary Sword", Rarity: "legendary", UnitValue: decimal.RequireFromString("0.1")},
		{Id: TokenIdEpicGoldenChestplate, Name: "Epic Golden Chestplate", Rarity: "epic", UnitValue: decimal.RequireFromString("0.05")},
	}
}

func DefaultConfig() Config {
	return Config{
		Tokens:           DefaultTokens(),
		LootboxPrice:     decimal.RequireFromString("0.1"),
		Days:             30,
		LeaderboardSize:  10,
		WhaleListSize:    20,
		RecentLimit:      20,
		RecentPerSource:  10,
		WhaleThreshold:   10,
		DolphinThreshold: 1,
		Location:         time.UTC,
	}
}

// TokenIndex returns the registry position of id, or -1 for unknown ids.
func (c *Config) TokenIndex(id domain.TokenId) int {
	for i, t := range c.Tokens {
		if t.Id == id {
			return i
		}
	}
	return -1
}

func (c *Config) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
