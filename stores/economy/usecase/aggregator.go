package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/economy"
	"github.com/x-xyz/gameanalytics/domain/event"
)

// Aggregator derives the economy views from event lists. Every method is a pure function of
// its arguments and the config; inputs are expected to have gone through Sanitize.
type Aggregator struct {
	cfg economy.Config
}

func NewAggregator(cfg economy.Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

func (a *Aggregator) Config() economy.Config {
	return a.cfg
}

// effectiveTime falls back to the reference time for events without a block time, which
// collapses them into the most recent bucket.
func effectiveTime(blockTime, reference time.Time) time.Time {
	if blockTime.IsZero() {
		return reference
	}
	return blockTime
}

func (a *Aggregator) BuildDailyMetrics(transfers []event.TransferEvent, lootboxes []event.LootboxEvent, reference time.Time) []economy.DailyMetric {
	loc := a.cfg.Loc()
	ref := reference.In(loc)
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	metrics := make([]economy.DailyMetric, a.cfg.Days)
	index := make(map[string]int, a.cfg.Days)
	for i := 0; i < a.cfg.Days; i++ {
		date := today.AddDate(0, 0, i-a.cfg.Days+1).Format(economy.DateLayout)
		metrics[i] = economy.DailyMetric{Date: date}
		index[date] = i
	}

	for i := range transfers {
		e := &transfers[i]
		date := effectiveTime(e.BlockTime, reference).In(loc).Format(economy.DateLayout)
		idx, ok := index[date]
		if !ok {
			continue
		}
		switch e.Classify() {
		case event.TypeMint:
			metrics[idx].Minted += e.Amount
		case event.TypeBurn:
			metrics[idx].Burned += e.Amount
		}
		metrics[idx].Transactions++
	}

	opened := make([]int64, a.cfg.Days)
	for i := range lootboxes {
		date := effectiveTime(lootboxes[i].BlockTime, reference).In(loc).Format(economy.DateLayout)
		if idx, ok := index[date]; ok {
			opened[idx]++
		}
	}
	for i, n := range opened {
		metrics[i].Revenue = a.cfg.LootboxPrice.Mul(decimal.NewFromInt(n)).InexactFloat64()
	}
	return metrics
}

func (a *Aggregator) BuildTokenMetrics(transfers []event.TransferEvent) []economy.TokenMetric {
	metrics := make([]economy.TokenMetric, len(a.cfg.Tokens))
	holders := make([]*addressSet, len(a.cfg.Tokens))
	for i, t := range a.cfg.Tokens {
		metrics[i] = economy.TokenMetric{TokenId: t.Id, Name: t.Name}
		holders[i] = newAddressSet()
	}

	for i := range transfers {
		e := &transfers[i]
		idx := a.cfg.TokenIndex(e.TokenId)
		if idx < 0 {
			continue
		}
		switch e.Classify() {
		case event.TypeMint:
			metrics[idx].TotalMinted += e.Amount
			holders[idx].add(e.To)
		case event.TypeBurn:
			metrics[idx].TotalBurned += e.Amount
		default:
			holders[idx].add(e.From)
			holders[idx].add(e.To)
		}
	}

	for i := range metrics {
		metrics[i].Circulation = metrics[i].TotalMinted - metrics[i].TotalBurned
		metrics[i].Holders = holders[i].len()
	}
	return metrics
}

// replay books every event on a ledger. slot maps an event to a ledger column, -1 keeps
// the address registered without moving any balance.
func replay(transfers []event.TransferEvent, width int, slot func(*event.TransferEvent) int) *ledger {
	l := newLedger(width)
	for i := range transfers {
		e := &transfers[i]
		s := slot(e)
		if !e.From.IsZero() {
			l.add(e.From, s, -e.Amount)
		}
		if !e.To.IsZero() {
			l.add(e.To, s, e.Amount)
		}
	}
	return l
}

func (a *Aggregator) tokenLedger(transfers []event.TransferEvent) *ledger {
	return replay(transfers, len(a.cfg.Tokens), func(e *event.TransferEvent) int {
		return a.cfg.TokenIndex(e.TokenId)
	})
}

func (a *Aggregator) BuildLeaderboard(transfers []event.TransferEvent) []economy.TopPlayer {
	players := []economy.TopPlayer{}
	a.tokenLedger(transfers).each(func(addr domain.Address, balances []int64) {
		p := economy.TopPlayer{
			Address:  addr,
			Balances: make([]economy.TokenBalance, len(a.cfg.Tokens)),
		}
		value := decimal.Zero
		for i, t := range a.cfg.Tokens {
			b := balances[i]
			p.Balances[i] = economy.TokenBalance{TokenId: t.Id, Balance: b}
			p.TotalItems += b
			value = value.Add(t.UnitValue.Mul(decimal.NewFromInt(b)))
			switch t.Id {
			case economy.TokenIdGoldCoin:
				p.GoldCoins = b
			case economy.TokenIdLegendarySword:
				p.Swords = b
			case economy.TokenIdEpicGoldenChestplate:
				p.Chestplates = b
			}
		}
		if p.TotalItems <= 0 {
			return
		}
		p.TotalValue = value.InexactFloat64()
		players = append(players, p)
	})

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].TotalItems > players[j].TotalItems
	})
	if len(players) > a.cfg.LeaderboardSize {
		players = players[:a.cfg.LeaderboardSize]
	}
	return players
}

func (a *Aggregator) category(percentage float64) economy.WhaleCategory {
	switch {
	case percentage >= a.cfg.WhaleThreshold:
		return economy.WhaleCategoryWhale
	case percentage >= a.cfg.DolphinThreshold:
		return economy.WhaleCategoryDolphin
	default:
		return economy.WhaleCategoryFish
	}
}

func (a *Aggregator) BuildWhaleDistribution(transfers []event.TransferEvent) []economy.WhaleEntry {
	l := replay(transfers, 1, func(*event.TransferEvent) int { return 0 })

	var supply int64
	l.each(func(_ domain.Address, balances []int64) {
		if balances[0] > 0 {
			supply += balances[0]
		}
	})

	whales := []economy.WhaleEntry{}
	l.each(func(addr domain.Address, balances []int64) {
		items := balances[0]
		if items <= 0 {
			return
		}
		percentage := 0.0
		if supply > 0 {
			percentage = float64(items) * 100 / float64(supply)
		}
		whales = append(whales, economy.WhaleEntry{
			Address:    addr,
			Items:      items,
			Percentage: percentage,
			Category:   a.category(percentage),
		})
	})

	sort.SliceStable(whales, func(i, j int) bool {
		return whales[i].Percentage > whales[j].Percentage
	})
	if len(whales) > a.cfg.WhaleListSize {
		whales = whales[:a.cfg.WhaleListSize]
	}
	return whales
}

func (a *Aggregator) BuildActivityHeatmap(lootboxes []event.LootboxEvent, reference time.Time) []economy.HeatmapCell {
	loc := a.cfg.Loc()
	var counts [7][24]int64
	for i := range lootboxes {
		t := effectiveTime(lootboxes[i].BlockTime, reference).In(loc)
		counts[int(t.Weekday())][t.Hour()]++
	}

	cells := make([]economy.HeatmapCell, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			cells = append(cells, economy.HeatmapCell{Day: day, Hour: hour, Count: counts[day][hour]})
		}
	}
	return cells
}

// BuildRecentEvents relies on both lists being newest first, as handed out by the event
// store; it does not re-derive recency from block numbers.
func (a *Aggregator) BuildRecentEvents(transfers []event.TransferEvent, lootboxes []event.LootboxEvent, reference time.Time, limit int) []economy.RecentEvent {
	n := a.cfg.RecentPerSource
	events := []economy.RecentEvent{}

	for i := 0; i < len(lootboxes) && i < n; i++ {
		e := &lootboxes[i]
		events = append(events, economy.RecentEvent{
			Type:      event.TypeLootbox,
			Player:    e.Player,
			TokenId:   e.PrizeTokenId,
			Amount:    e.Amount,
			Timestamp: effectiveTime(e.BlockTime, reference),
			TxHash:    e.TxHash,
		})
	}

	for i := 0; i < len(transfers) && i < n; i++ {
		e := &transfers[i]
		typ := e.Classify()
		player := e.From
		if typ == event.TypeMint {
			player = e.To
		}
		events = append(events, economy.RecentEvent{
			Type:      typ,
			Player:    player,
			TokenId:   e.TokenId,
			Amount:    e.Amount,
			Timestamp: effectiveTime(e.BlockTime, reference),
			TxHash:    e.TxHash,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if limit >= 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

func (a *Aggregator) BuildAggregateStats(tokenMetrics []economy.TokenMetric, lootboxCount int, dailyMetrics []economy.DailyMetric, leaderboard []economy.TopPlayer) economy.AggregateStats {
	stats := economy.AggregateStats{
		TotalRevenue:         a.cfg.LootboxPrice.Mul(decimal.NewFromInt(int64(lootboxCount))).InexactFloat64(),
		TotalLootboxesOpened: lootboxCount,
		UniquePlayers:        len(leaderboard),
	}
	for _, t := range tokenMetrics {
		stats.TotalMinted += t.TotalMinted
		stats.TotalBurned += t.TotalBurned
	}
	stats.TotalCirculation = stats.TotalMinted - stats.TotalBurned

	if len(dailyMetrics) > 0 {
		last := dailyMetrics[len(dailyMetrics)-1]
		stats.MintRate24h = last.Minted
		stats.BurnRate24h = last.Burned
		stats.Revenue24h = last.Revenue
	}
	return stats
}

func (a *Aggregator) BuildEconomyOverview(transfers []event.TransferEvent, lootboxCount int) economy.EconomyOverview {
	overview := economy.EconomyOverview{
		TokenStats:        a.BuildTokenMetrics(transfers),
		TotalTransactions: len(transfers),
		LootboxOpenings:   lootboxCount,
	}
	for _, t := range overview.TokenStats {
		overview.TotalMinted += t.TotalMinted
		overview.TotalBurned += t.TotalBurned
	}
	overview.TotalCirculation = overview.TotalMinted - overview.TotalBurned

	holders := newAddressSet()
	volume := newLedger(1)
	for i := range transfers {
		e := &transfers[i]
		switch e.Classify() {
		case event.TypeMint:
			holders.add(e.To)
			volume.add(e.To, 0, e.Amount)
		case event.TypeTransfer:
			holders.add(e.From)
			holders.add(e.To)
			volume.add(e.From, 0, e.Amount)
		case event.TypeBurn:
			volume.add(e.From, 0, e.Amount)
		}
	}
	overview.UniqueHolders = holders.len()

	// minter for mints, sender otherwise; first seen order
	overview.Distribution = make([]economy.PlayerVolume, 0, len(volume.order))
	volume.each(func(addr domain.Address, balances []int64) {
		overview.Distribution = append(overview.Distribution, economy.PlayerVolume{Address: addr, Volume: balances[0]})
	})
	return overview
}

func (a *Aggregator) BuildHourlySeries(transfers []event.TransferEvent, reference time.Time) []economy.HourlyPoint {
	loc := a.cfg.Loc()
	byHour := make(map[int64]*economy.HourlyPoint)
	for i := range transfers {
		e := &transfers[i]
		kind := e.Classify()
		if kind == event.TypeTransfer {
			continue
		}
		t := effectiveTime(e.BlockTime, reference).In(loc)
		hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
		p, ok := byHour[hour.Unix()]
		if !ok {
			p = &economy.HourlyPoint{Hour: hour}
			byHour[hour.Unix()] = p
		}
		if kind == event.TypeMint {
			p.Minted += e.Amount
		} else {
			p.Burned += e.Amount
		}
	}

	points := make([]economy.HourlyPoint, 0, len(byHour))
	for _, p := range byHour {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Hour.Before(points[j].Hour)
	})
	return points
}

func (a *Aggregator) BuildInventory(transfers []event.TransferEvent, owner domain.Address) []economy.InventoryItem {
	owner = owner.ToLower()
	balances := make([]int64, len(a.cfg.Tokens))
	for i := range transfers {
		e := &transfers[i]
		idx := a.cfg.TokenIndex(e.TokenId)
		if idx < 0 {
			continue
		}
		if e.From == owner && !e.From.IsZero() {
			balances[idx] -= e.Amount
		}
		if e.To == owner && !e.To.IsZero() {
			balances[idx] += e.Amount
		}
	}

	items := make([]economy.InventoryItem, len(a.cfg.Tokens))
	for i, t := range a.cfg.Tokens {
		items[i] = economy.InventoryItem{
			TokenId: t.Id,
			Name:    t.Name,
			Rarity:  t.Rarity,
			Balance: balances[i],
		}
	}
	return items
}

// Build runs every view against one reference time.
func (a *Aggregator) Build(transfers []event.TransferEvent, lootboxes []event.LootboxEvent, reference time.Time) *economy.Dashboard {
	daily := a.BuildDailyMetrics(transfers, lootboxes, reference)
	tokens := a.BuildTokenMetrics(transfers)
	leaderboard := a.BuildLeaderboard(transfers)
	return &economy.Dashboard{
		ReferenceTime: reference,
		DailyMetrics:  daily,
		TokenMetrics:  tokens,
		Leaderboard:   leaderboard,
		Whales:        a.BuildWhaleDistribution(transfers),
		Heatmap:       a.BuildActivityHeatmap(lootboxes, reference),
		RecentEvents:  a.BuildRecentEvents(transfers, lootboxes, reference, a.cfg.RecentLimit),
		Stats:         a.BuildAggregateStats(tokens, len(lootboxes), daily, leaderboard),
		Overview:      a.BuildEconomyOverview(transfers, len(lootboxes)),
		HourlySeries:  a.BuildHourlySeries(transfers, reference),
	}
}
