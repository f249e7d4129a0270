package main

import (
	"fmt"
	"strings"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/telemetry"

	"github.com/pterm/pterm"
)

func cardText(card *deck.Card) string {
	if card == nil {
		return pterm.Gray("??")
	}

	if card.IsRed() {
		return pterm.LightRed(card.String())
	}

	return card.String()
}

func handText(h *blackjack.HandState) string {
	if h == nil {
		return ""
	}

	cards := make([]string, len(h.Cards))
	for i, card := range h.Cards {
		cards[i] = cardText(card)
	}

	score := fmt.Sprintf("%d", h.Score)
	switch {
	case h.IsBlackjack:
		score = pterm.LightGreen("Blackjack")
	case h.IsBusted:
		score = pterm.LightRed(fmt.Sprintf("%d bust", h.Score))
	case h.IsSoft:
		score = fmt.Sprintf("soft %d", h.Score)
	}

	return fmt.Sprintf("%s  (%s)", strings.Join(cards, " "), score)
}

func resultText(o *telemetry.Outcome) string {
	if o == nil {
		return ""
	}

	net := o.Net()
	switch o.Result {
	case telemetry.ResultWin:
		if o.IsBlackjack {
			return pterm.LightGreen(fmt.Sprintf("Blackjack! %+d", net))
		}

		return pterm.LightGreen(fmt.Sprintf("You win %+d", net))
	case telemetry.ResultLose:
		return pterm.LightRed(fmt.Sprintf("You lose %+d", net))
	}

	return pterm.LightYellow(fmt.Sprintf("Push %+d", net))
}

// renderState prints the table as panels
func renderState(state *blackjack.GameState) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	var table strings.Builder
	if state.DealerHand != nil {
		table.WriteString(pterm.Sprintfln("Dealer: %s", handText(state.DealerHand)))
	}

	if state.PlayerHand != nil {
		marker := ""
		if state.SplitHand != nil && state.ActiveHand == 0 {
			marker = " <"
		}
		table.WriteString(pterm.Sprintfln("You:    %s%s", handText(state.PlayerHand), marker))
	}

	if state.SplitHand != nil {
		marker := ""
		if state.ActiveHand == 1 {
			marker = " <"
		}
		table.WriteString(pterm.Sprintfln("Split:  %s%s", handText(state.SplitHand), marker))
	}

	if state.Phase == blackjack.PhaseSettlement {
		table.WriteString(pterm.Sprintfln("%s", resultText(state.LastOutcome)))
	}

	if table.Len() == 0 {
		table.WriteString(pterm.Sprintfln("Place your bet"))
	}

	wallet := pterm.Sprintfln("Balance: %d\nBet: %d\nCards left: %d", state.Balance, state.CurrentBet, state.CardsLeft)
	if state.InsuranceStake > 0 {
		wallet += pterm.Sprintfln("Insurance: %d", state.InsuranceStake)
	}

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{
			{Data: pbox.WithTitle(pterm.LightCyan("|" + state.Name + "|")).WithTitleTopCenter().Sprint(table.String())},
			{Data: pbox.WithTitle("|WALLET|").WithTitleTopLeft().Sprint(wallet)},
		},
	}).Render()
}

func renderLogs(messages []*playable.LogMessage) {
	for _, msg := range messages {
		pterm.Info.Println(msg.Message)
	}
}

func renderStats(s telemetry.StatsSnapshot) {
	_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Hands", "Wins", "Losses", "Pushes", "Blackjacks", "Win rate", "Net", "Best streak"},
		{
			fmt.Sprint(s.TotalHands),
			fmt.Sprint(s.Wins),
			fmt.Sprint(s.Losses),
			fmt.Sprint(s.Pushes),
			fmt.Sprint(s.Blackjacks),
			fmt.Sprintf("%.1f%%", s.WinRate),
			fmt.Sprintf("%+d", s.NetProfit),
			fmt.Sprint(s.BestStreak),
		},
	}).Render()
}

func renderQuests(quests []telemetry.Quest) {
	data := pterm.TableData{{"Quest", "Progress", "Reward", "Status"}}
	for _, q := range quests {
		status := ""
		switch {
		case q.Claimed:
			status = "claimed"
		case q.Completed:
			status = pterm.LightGreen("complete")
		}

		data = append(data, []string{
			q.Name + ": " + q.Description,
			fmt.Sprintf("%d/%d", q.Progress, q.Target),
			fmt.Sprintf("%d chips", q.RewardChips),
			status,
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
