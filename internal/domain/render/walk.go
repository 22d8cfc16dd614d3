package render

import (
	"fmt"
	"strings"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
)

func (f *Formatter) WalkStarted(e records.WalkStarted) messages.Message {
	walkers := someone
	if names := nonBlank(e.Walkers); len(names) > 0 {
		walkers = strings.Join(names, "と")
	}

	text := fmt.Sprintf("🐕 散歩スタート！\n%s\n\n%sが福くんの散歩に出発しました💨\nいってらっしゃい！",
		f.DateTime(f.now()), walkers)

	return messages.New(text, nil)
}

func (f *Formatter) WalkCompleted(e records.WalkCompleted) messages.Message {
	var sb strings.Builder

	sb.WriteString("🏁 散歩終了\n")
	sb.WriteString(f.DateTime(e.StartTime))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "👤 担当: %s\n", strings.Join(nonBlank(e.Walkers), ", "))
	fmt.Fprintf(&sb, "⏱️ 時間: %s分\n", number(e.DurationMinutes))
	fmt.Fprintf(&sb, "📍 距離: %.2fkm", e.DistanceMeters/1000)

	if e.Weather != nil {
		fmt.Fprintf(&sb, "\n天気: %s %s℃ (風速%sm)",
			WeatherEmoji(e.Weather.IconCode), number(e.Weather.TempC), number(e.Weather.WindMps))
	}
	if e.EnergyLevel != 0 {
		fmt.Fprintf(&sb, "\n元気: %s", EnergyLabel(e.EnergyLevel))
	}

	ex := records.Excretion{}
	if e.Excretion != nil {
		ex = *e.Excretion
	}
	poo := "なし"
	if ex.PooOccurred {
		poo = "あり💩"
		if ex.PooFirmness != 0 {
			poo += " (" + FirmnessLabel(ex.PooFirmness) + ")"
		}
	}
	pee := "なし"
	if ex.PeeOccurred {
		pee = "あり💧"
	}
	fmt.Fprintf(&sb, "\n\n🚽 トイレ:\nうんち: %s / おしっこ: %s", poo, pee)

	if memo := strings.TrimSpace(e.Memo); memo != "" {
		fmt.Fprintf(&sb, "\n\n📝 メモ:\n%s", memo)
	}

	return messages.New(sb.String(), e.Photos)
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
