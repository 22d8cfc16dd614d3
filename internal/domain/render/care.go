package render

import (
	"fmt"
	"strings"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
)

const updatedMarker = " (修正)"

// Care renderiza un registro de cuidado. notify=false => ok=false.
func (f *Formatter) Care(r records.CareRecord) (messages.Message, bool) {
	if !r.ShouldNotify() {
		return messages.Message{}, false
	}

	title, detail := careTitleDetail(r)
	if r.IsUpdate {
		title += updatedMarker
	}

	text := fmt.Sprintf("%s\n%s\n\n%s", title, f.DateTime(r.Date), detail)
	if memo := strings.TrimSpace(r.Memo); memo != "" {
		text += "\n📝 " + memo
	}

	return messages.New(text, r.Photos), true
}

// CareTitle devuelve el título fijo de cada tipo, sin marcador de corrección.
func CareTitle(kind records.CareKind) string {
	title, _ := careTitleDetail(records.CareRecord{Kind: kind})
	return title
}

func careTitleDetail(r records.CareRecord) (string, string) {
	walker := orSomeone(r.Walker)

	switch r.Kind {
	case records.CareKindExcretion:
		return "💩 排泄", fmt.Sprintf("%sがトイレの世話をしました。\nうんちの硬さ: %s", walker, FirmnessLabel(r.PooFirmness))

	case records.CareKindFood:
		return "🥣 ご飯", fmt.Sprintf("%sがご飯をあげました。\n残量: %s", walker, FoodAmountLabel(r.FoodAmount))

	case records.CareKindMedicine:
		med := r.MedicineType
		if med == "" {
			med = "薬"
		}
		vaccine := ""
		if r.IsVaccine {
			vaccine = "(予防接種)"
		}
		return "💊 薬", fmt.Sprintf("%sが%s%sをあげました。", walker, med, vaccine)

	case records.CareKindBath:
		return "🛁 入浴", fmt.Sprintf("%sが福をお風呂に入れました✨", walker)

	case records.CareKindBrushing:
		return "✨ ブラッシング", fmt.Sprintf("%sがブラッシングをしてふわふわになりました✨", walker)

	case records.CareKindGrooming:
		place := "自宅"
		if r.GroomedBy == records.GroomedByShop {
			place = fmt.Sprintf("お店(%s)", r.ShopName)
		}
		return "✂️ 散髪", fmt.Sprintf("%sが%sで散髪しました💈", walker, place)

	case records.CareKindHospital:
		hospital := r.HospitalName
		if hospital == "" {
			hospital = "病院"
		}
		reason := r.Reason
		if reason == "" {
			reason = "なし"
		}
		return "🏥 病院", fmt.Sprintf("%sが%sに連れて行きました。\n理由: %s", walker, hospital, reason)

	default:
		return "✨ お世話", fmt.Sprintf("%sがお世話をしました。", walker)
	}
}
