package economy

import (
	"time"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/event"
)

const DateLayout = "2006-01-02"

type DailyMetric struct {
	Date         string  `json:"date"`
	Minted       int64   `json:"minted"`
	Burned       int64   `json:"burned"`
	Revenue      float64 `json:"revenue"`
	Transactions int64   `json:"transactions"`
}

type TokenMetric struct {
	TokenId     domain.TokenId `json:"tokenId"`
	Name        string         `json:"name"`
	TotalMinted int64          `json:"totalMinted"`
	TotalBurned int64          `json:"totalBurned"`
	Circulation int64          `json:"circulation"`
	// Holders counts every address that ever held the token, not current holders.
	Holders int `json:"holders"`
}

type TokenBalance struct {
	TokenId domain.TokenId `json:"tokenId"`
	Balance int64          `json:"balance"`
}

type TopPlayer struct {
	Address     domain.Address `json:"address"`
	TotalItems  int64          `json:"totalItems"`
	GoldCoins   int64          `json:"goldCoins"`
	Swords      int64          `json:"swords"`
	Chestplates int64          `json:"chestplates"`
	Balances    []TokenBalance `json:"balances"`
	TotalValue  float64        `json:"totalValue"`
}

type WhaleCategory string

const (
	WhaleCategoryWhale   WhaleCategory = "whale"
	WhaleCategoryDolphin WhaleCategory = "dolphin"
	WhaleCategoryFish    WhaleCategory = "fish"
)

type WhaleEntry struct {
	Address    domain.Address `json:"address"`
	Items      int64          `json:"items"`
	Percentage float64        `json:"percentage"`
	Category   WhaleCategory  `json:"category"`
}

// HeatmapCell counts lootbox openings; Day 0 is Sunday.
type HeatmapCell struct {
	Day   int   `json:"day"`
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type RecentEvent struct {
	Type      event.Type     `json:"type"`
	Player    domain.Address `json:"player"`
	TokenId   domain.TokenId `json:"tokenId"`
	Amount    int64          `json:"amount"`
	Timestamp time.Time      `json:"timestamp"`
	TxHash    domain.TxHash  `json:"txHash"`
}

type AggregateStats struct {
	TotalMinted          int64   `json:"totalMinted"`
	TotalBurned          int64   `json:"totalBurned"`
	TotalCirculation     int64   `json:"totalCirculation"`
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalLootboxesOpened int     `json:"totalLootboxesOpened"`
	// UniquePlayers is the leaderboard length, so it is capped by the leaderboard size.
	UniquePlayers int     `json:"uniquePlayers"`
	MintRate24h   int64   `json:"mintRate24h"`
	BurnRate24h   int64   `json:"burnRate24h"`
	Revenue24h    float64 `json:"revenue24h"`
}

type EconomyOverview struct {
	TokenStats        []TokenMetric  `json:"tokenStats"`
	TotalMinted       int64          `json:"totalMinted"`
	TotalBurned       int64          `json:"totalBurned"`
	TotalCirculation  int64          `json:"totalCirculation"`
	UniqueHolders     int            `json:"uniqueHolders"`
	TotalTransactions int            `json:"totalTransactions"`
	LootboxOpenings   int            `json:"lootboxOpenings"`
	Distribution      []PlayerVolume `json:"distribution"`
}

// PlayerVolume sums the amount of every event a player initiated.
type PlayerVolume struct {
	Address domain.Address `json:"address"`
	Volume  int64          `json:"volume"`
}

type HourlyPoint struct {
	Hour   time.Time `json:"hour"`
	Minted int64     `json:"minted"`
	Burned int64     `json:"burned"`
}

type InventoryItem struct {
	TokenId domain.TokenId `json:"tokenId"`
	Name    string         `json:"name"`
	Rarity  string         `json:"rarity"`
	Balance int64          `json:"balance"`
}

// Dashboard bundles every derived view computed from one snapshot.
type Dashboard struct {
	Revision      string    `json:"revision"`
	ReferenceTime time.Time `json:"referenceTime"`
	// Skipped counts malformed events left out of every view
	Skipped      int             `json:"skipped"`
	DailyMetrics []DailyMetric   `json:"dailyMetrics"`
	TokenMetrics []TokenMetric   `json:"tokenMetrics"`
	Leaderboard  []TopPlayer     `json:"leaderboard"`
	Whales       []WhaleEntry    `json:"whales"`
	Heatmap      []HeatmapCell   `json:"heatmap"`
	RecentEvents []RecentEvent   `json:"recentEvents"`
	Stats        AggregateStats  `json:"stats"`
	Overview     EconomyOverview `json:"overview"`
	HourlySeries []HourlyPoint   `json:"hourlySeries"`
}

type UseCase interface {
	Dashboard(c ctx.Ctx) (*Dashboard, error)
	Inventory(c ctx.Ctx, owner domain.Address) ([]InventoryItem, error)
}
