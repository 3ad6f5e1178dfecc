// Package main is the entry point for the scratchcard lottery engine. It
// wires the configuration, wallet, scenario pool, and ticket engine together
// and drives them from an interactive prompt standing in for a presentation
// layer.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scratch-lottery/internal/config"
	"scratch-lottery/internal/engine"
	"scratch-lottery/internal/prize"
	"scratch-lottery/internal/scenario"
	"scratch-lottery/internal/wallet"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().
		Int("scenario_count", len(cfg.Scenarios)).
		Ints64("ticket_prices", cfg.TicketPrices).
		Msg("Configuration loaded")

	// Prize-table validation is fail-fast: a missing instant-win payout for a
	// configured price aborts startup instead of failing a ticket later.
	instantWins, err := cfg.InstantWinPayouts()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid instant-win configuration")
	}
	prizes, err := prize.NewTable(instantWins, cfg.PrizeMultipliers.Match, cfg.TicketPrices)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid prize table")
	}

	pool, err := scenario.NewPool(cfg.Scenarios, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scenario pool")
	}

	playerWallet := wallet.New(cfg.Wallet.StartingBalance)

	eng, err := engine.New(&engine.Config{
		TicketPrices: cfg.TicketPrices,
		Prizes:       prizes,
		Source:       pool,
		Wallet:       playerWallet,
		Logger:       log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ticket engine")
	}

	registry := engine.NewRegistry()
	if err := registry.Register("local", eng); err != nil {
		log.Fatal().Err(err).Msg("Failed to register session")
	}

	fmt.Println("Scratchcard lottery. Commands: price <n> | price up | price down | buy | rw <i> | rp <i> | force <descriptor> | state | ledger | quit")
	printState(eng)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "quit", "exit":
			return
		case "state":
			printState(eng)
		case "ledger":
			for _, tx := range playerWallet.Transactions() {
				fmt.Printf("  %-12s %8s  %s\n", tx.Type, money(tx.Amount), tx.Description)
			}
		case "price":
			handlePrice(eng, fields[1:])
		case "buy":
			events, err := eng.Buy()
			printEvents(events)
			if err != nil {
				fmt.Println("declined:", err)
			}
		case "rw", "rp":
			if len(fields) != 2 {
				fmt.Printf("usage: %s <index>\n", fields[0])
				continue
			}
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("index must be a number")
				continue
			}
			var events []engine.Event
			if fields[0] == "rw" {
				events, err = eng.RevealWinning(index)
			} else {
				events, err = eng.RevealPlayer(index)
			}
			printEvents(events)
			if err != nil {
				fmt.Println("declined:", err)
			}
		case "force":
			if len(fields) < 2 {
				fmt.Println("usage: force <descriptor>")
				continue
			}
			if err := eng.ForceScenario(strings.Join(fields[1:], " ")); err != nil {
				fmt.Println("declined:", err)
			} else {
				fmt.Println("next ticket will use the forced scenario")
			}
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func handlePrice(eng *engine.Engine, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: price <amount> | price up | price down")
		return
	}

	var err error
	switch args[0] {
	case "up":
		err = eng.PriceUp()
	case "down":
		err = eng.PriceDown()
	default:
		var price int64
		price, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println("price must be a number")
			return
		}
		err = eng.SelectPrice(price)
	}
	if err != nil {
		fmt.Println("declined:", err)
		return
	}
	fmt.Println("ticket price:", money(eng.SelectedPrice()))
}

// printEvents renders the engine's outbound events the way a presentation
// layer would consume them.
func printEvents(events []engine.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.TicketStarted:
			fmt.Printf("ticket started: %d winning + %d player symbols for %s\n",
				len(e.WinningSymbols), len(e.PlayerSymbols), money(e.Price))
		case engine.WinningRowUnlocked:
			fmt.Println("winning row complete - player row unlocked")
		case engine.PositionRevealed:
			fmt.Printf("%s[%d] = %s\n", e.Row, e.Index, e.Symbol)
		case engine.InstantWin:
			fmt.Printf("INSTANT WIN %s pays %s\n", e.Symbol, money(e.Amount))
		case engine.Match:
			fmt.Printf("MATCH %s pays %s\n", e.Symbol, money(e.Amount))
		case engine.NoMatch:
			fmt.Println("no match yet...")
		case engine.TicketSettled:
			if e.Amount > 0 {
				fmt.Printf("Congrats! You Won: %s! Balance: %s\n", money(e.Amount), money(e.NewBalance))
			} else {
				fmt.Printf("You Lost! Better luck next time! Balance: %s\n", money(e.NewBalance))
			}
		case engine.PurchaseRejected:
			fmt.Println("purchase rejected:", e.Reason)
		}
	}
}

func printState(eng *engine.Engine) {
	snap := eng.Snapshot()
	fmt.Printf("state=%s price=%s balance=%s\n", snap.State, money(snap.SelectedPrice), money(snap.Balance))
	if snap.Ticket == nil {
		return
	}
	fmt.Printf("  winnings so far: %s\n", money(snap.Ticket.Winnings))
	fmt.Printf("  winning row: %s\n", renderRow(snap.Ticket.WinningSymbols, snap.Ticket.WinningRevealed, snap.Ticket.Highlighted))
	fmt.Printf("  player row:  %s\n", renderRow(snap.Ticket.PlayerSymbols, snap.Ticket.PlayerRevealed, nil))
}

func renderRow(symbols []scenario.Symbol, revealed, highlighted []bool) string {
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		switch {
		case !revealed[i]:
			parts[i] = "?"
		case highlighted != nil && highlighted[i]:
			parts[i] = "[" + sym.Token() + "]"
		default:
			parts[i] = sym.Token()
		}
	}
	return strings.Join(parts, " ")
}

// money formats an amount of pence as pounds.
func money(pence int64) string {
	return fmt.Sprintf("£%.2f", float64(pence)/100)
}
