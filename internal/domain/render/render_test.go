package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
)

var allCareKinds = []records.CareKind{
	records.CareKindExcretion,
	records.CareKindFood,
	records.CareKindMedicine,
	records.CareKindBath,
	records.CareKindBrushing,
	records.CareKindGrooming,
	records.CareKindHospital,
}

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return New(loc)
}

func TestCare_EachKindRendersOneTextPartWithFixedTitle(t *testing.T) {
	f := newTestFormatter(t)
	want := map[records.CareKind]string{
		records.CareKindExcretion: "💩 排泄",
		records.CareKindFood:      "🥣 ご飯",
		records.CareKindMedicine:  "💊 薬",
		records.CareKindBath:      "🛁 入浴",
		records.CareKindBrushing:  "✨ ブラッシング",
		records.CareKindGrooming:  "✂️ 散髪",
		records.CareKindHospital:  "🏥 病院",
	}

	for _, kind := range allCareKinds {
		t.Run(string(kind), func(t *testing.T) {
			m, ok := f.Care(records.CareRecord{Kind: kind, Walker: "Alice"})
			require.True(t, ok)
			require.Len(t, m.Parts, 1)
			assert.Equal(t, messages.PartText, m.Parts[0].Kind)
			assert.True(t, strings.HasPrefix(m.Summary(), want[kind]+"\n"), m.Summary())
			assert.Equal(t, want[kind], CareTitle(kind))
		})
	}
}

func TestCare_UnknownKindFallsBackToGenericCare(t *testing.T) {
	f := newTestFormatter(t)

	for _, kind := range []records.CareKind{records.CareKindOther, "walk-in-the-rain", ""} {
		m, ok := f.Care(records.CareRecord{Kind: kind})
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(m.Summary(), "✨ お世話\n"))
		assert.Contains(t, m.Summary(), "誰かがお世話をしました。")
	}
}

func TestCare_NotifyFalseSuppressesEveryKind(t *testing.T) {
	f := newTestFormatter(t)
	off := false

	for _, kind := range append(allCareKinds, records.CareKindOther) {
		m, ok := f.Care(records.CareRecord{Kind: kind, Notify: &off, Photos: []string{"https://img/1.jpg"}})
		assert.False(t, ok, kind)
		assert.True(t, m.IsEmpty(), kind)

		m, ok = f.Render(records.CareRecord{Kind: kind, Notify: &off})
		assert.False(t, ok, kind)
		assert.True(t, m.IsEmpty(), kind)
	}
}

func TestCare_UpdateAddsCorrectionMarker(t *testing.T) {
	f := newTestFormatter(t)

	m, ok := f.Care(records.CareRecord{Kind: records.CareKindBath, Walker: "Bob", IsUpdate: true})
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(m.Summary(), "🛁 入浴 (修正)\n"))
}

func TestCare_KindSpecificDetails(t *testing.T) {
	f := newTestFormatter(t)
	date := time.Date(2025, 4, 1, 15, 5, 0, 0, time.UTC) // 2025-04-02 00:05 JST

	cases := []struct {
		name string
		rec  records.CareRecord
		want []string
	}{
		{"excretion", records.CareRecord{Kind: records.CareKindExcretion, Walker: "A", PooFirmness: 5, Date: date}, []string{"25/04/02 00:05", "うんちの硬さ: 硬い"}},
		{"food default", records.CareRecord{Kind: records.CareKindFood, Walker: "A", FoodAmount: 9}, []string{"残量: 普通"}},
		{"vaccine", records.CareRecord{Kind: records.CareKindMedicine, Walker: "A", MedicineType: "狂犬病", IsVaccine: true}, []string{"Aが狂犬病(予防接種)をあげました。"}},
		{"medicine default", records.CareRecord{Kind: records.CareKindMedicine, Walker: "A"}, []string{"Aが薬をあげました。"}},
		{"grooming shop", records.CareRecord{Kind: records.CareKindGrooming, Walker: "A", GroomedBy: "shop", ShopName: "Wan"}, []string{"お店(Wan)で散髪"}},
		{"grooming home", records.CareRecord{Kind: records.CareKindGrooming, Walker: "A"}, []string{"自宅で散髪"}},
		{"hospital", records.CareRecord{Kind: records.CareKindHospital, Walker: "A"}, []string{"病院に連れて行きました。", "理由: なし"}},
		{"memo", records.CareRecord{Kind: records.CareKindBath, Walker: "A", Memo: "smells nice"}, []string{"\n📝 smells nice"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := f.Care(tc.rec)
			require.True(t, ok)
			for _, w := range tc.want {
				assert.Contains(t, m.Summary(), w)
			}
		})
	}
}

func TestCare_NoMemoBlockWhenEmpty(t *testing.T) {
	f := newTestFormatter(t)
	m, _ := f.Care(records.CareRecord{Kind: records.CareKindBath, Memo: "   "})
	assert.NotContains(t, m.Summary(), "📝")
}

func TestPhotoTruncation(t *testing.T) {
	f := newTestFormatter(t)

	for _, tc := range []struct{ in, want int }{{0, 0}, {3, 3}, {4, 4}, {7, 4}} {
		t.Run(fmt.Sprintf("%d", tc.in), func(t *testing.T) {
			photos := make([]string, tc.in)
			for i := range photos {
				photos[i] = fmt.Sprintf("https://img/%d.jpg", i)
			}

			walk := f.WalkCompleted(records.WalkCompleted{StartTime: time.Now(), Photos: photos})
			care, ok := f.Care(records.CareRecord{Kind: records.CareKindBath, Photos: photos})
			require.True(t, ok)

			for _, m := range []messages.Message{walk, care} {
				imgs := m.Images()
				require.Len(t, imgs, tc.want)
				assert.Equal(t, messages.PartText, m.Parts[0].Kind)
				for i, p := range imgs {
					assert.Equal(t, photos[i], p.OriginalURL)
				}
			}
		})
	}
}

func TestLookupTables(t *testing.T) {
	assert.Equal(t, []string{"とてもやわらかい", "やわらかい", "普通", "硬め", "硬い"},
		[]string{FirmnessLabel(1), FirmnessLabel(2), FirmnessLabel(3), FirmnessLabel(4), FirmnessLabel(5)})
	assert.Equal(t, []string{"空っぽ", "少し", "普通", "多め", "満杯"},
		[]string{FoodAmountLabel(1), FoodAmountLabel(2), FoodAmountLabel(3), FoodAmountLabel(4), FoodAmountLabel(5)})
	assert.Equal(t, []string{"絶不調 😫", "不調 😓", "普通 😐", "元気 🙂", "絶好調 😆"},
		[]string{EnergyLabel(1), EnergyLabel(2), EnergyLabel(3), EnergyLabel(4), EnergyLabel(5)})

	for _, code := range []int{0, -1, 6, 100} {
		assert.Equal(t, "普通", FirmnessLabel(code))
		assert.Equal(t, "普通", FoodAmountLabel(code))
		assert.Equal(t, "普通", EnergyLabel(code))
	}

	assert.Equal(t, "☀️", WeatherEmoji("01d"))
	assert.Equal(t, "⛅", WeatherEmoji("02n"))
	assert.Equal(t, "☁️", WeatherEmoji("03d"))
	assert.Equal(t, "🌧️", WeatherEmoji("09d"))
	assert.Equal(t, "☔", WeatherEmoji("10n"))
	assert.Equal(t, "⛄", WeatherEmoji("13d"))
	assert.Equal(t, "🌤️", WeatherEmoji("50d"))
	assert.Equal(t, "🌤️", WeatherEmoji(""))
	assert.Equal(t, "🌤️", WeatherEmoji("1"))
}

func TestWalkCompleted_EndToEndText(t *testing.T) {
	f := newTestFormatter(t)
	start := time.Date(2025, 4, 1, 0, 30, 0, 0, time.UTC) // 09:30 JST

	m := f.WalkCompleted(records.WalkCompleted{
		StartTime:       start,
		Walkers:         []string{"Alice", "Bob"},
		DurationMinutes: 30,
		DistanceMeters:  2500,
		Excretion:       &records.Excretion{PooOccurred: true, PooFirmness: 3, PeeOccurred: true},
	})

	require.Len(t, m.Parts, 1)
	want := "🏁 散歩終了\n25/04/01 09:30\n\n" +
		"👤 担当: Alice, Bob\n" +
		"⏱️ 時間: 30分\n" +
		"📍 距離: 2.50km" +
		"\n\n🚽 トイレ:\nうんち: あり💩 (普通) / おしっこ: あり💧"
	assert.Equal(t, want, m.Summary())
}

func TestWalkCompleted_OptionalBlocks(t *testing.T) {
	f := newTestFormatter(t)

	m := f.WalkCompleted(records.WalkCompleted{
		StartTime:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Walkers:         []string{"Alice"},
		DurationMinutes: 12,
		DistanceMeters:  1234,
		Weather:         &records.Weather{IconCode: "10d", TempC: 12.5, WindMps: 3},
		EnergyLevel:     5,
		Memo:            "met a cat",
	})

	s := m.Summary()
	assert.Contains(t, s, "📍 距離: 1.23km")
	assert.Contains(t, s, "\n天気: ☔ 12.5℃ (風速3m)")
	assert.Contains(t, s, "\n元気: 絶好調 😆")
	assert.Contains(t, s, "うんち: なし / おしっこ: なし")
	assert.True(t, strings.HasSuffix(s, "\n\n📝 メモ:\nmet a cat"))
}

func TestWalkStarted_UsesClockAndJoinsWalkers(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC) // 2026-01-01 08:00 JST
	f := newTestFormatter(t).WithClock(func() time.Time { return now })

	m, ok := f.Render(records.WalkStarted{Walkers: []string{"Alice", "Bob"}})
	require.True(t, ok)
	require.Len(t, m.Parts, 1)
	assert.Contains(t, m.Summary(), "🐕 散歩スタート！\n26/01/01 08:00\n\n")
	assert.Contains(t, m.Summary(), "AliceとBobが福くんの散歩に出発しました💨")

	m = f.WalkStarted(records.WalkStarted{})
	assert.Contains(t, m.Summary(), "誰かが福くんの散歩に出発しました")
}

func TestDateTime_ZeroInstantIsBlank(t *testing.T) {
	assert.Equal(t, "", newTestFormatter(t).DateTime(time.Time{}))
}
