package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// lineRecord — фиксированная схема позиции корзины/заказа в JSONB.
// Неизвестные формы отклоняются на границе хранилища, а не молча принимаются.
type lineRecord struct {
	Kind      string `json:"kind"`
	ProductID string `json:"product_id,omitempty"`
	NameUz    string `json:"name_uz,omitempty"`
	NameRu    string `json:"name_ru,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Qty       int32  `json:"qty"`
	Desc      string `json:"desc,omitempty"`
	PhotoRef  string `json:"photo_ref,omitempty"`
}

// encodeLines сериализует позиции в JSONB-пригодный вид.
func encodeLines(lines map[string]domain.LineItem) ([]byte, error) {
	records := make(map[string]lineRecord, len(lines))
	for key, line := range lines {
		records[key] = lineRecord{
			Kind:      string(line.Kind),
			ProductID: line.ProductID,
			NameUz:    line.NameUz,
			NameRu:    line.NameRu,
			Price:     line.Price,
			Qty:       line.Qty,
			Desc:      line.Desc,
			PhotoRef:  line.PhotoRef,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode lines: %w", err)
	}
	return data, nil
}

// decodeLines разбирает JSONB обратно в доменные позиции, проверяя схему.
func decodeLines(data []byte) (map[string]domain.LineItem, error) {
	if len(data) == 0 {
		return make(map[string]domain.LineItem), nil
	}
	var records map[string]lineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}

	lines := make(map[string]domain.LineItem, len(records))
	for key, rec := range records {
		kind := domain.LineKind(rec.Kind)
		if kind != domain.LineKindProduct && kind != domain.LineKindCustom {
			return nil, fmt.Errorf("decode lines: unknown line kind %q for key %q", rec.Kind, key)
		}
		if rec.Qty < 1 {
			return nil, fmt.Errorf("decode lines: invalid qty %d for key %q", rec.Qty, key)
		}
		lines[key] = domain.LineItem{
			Kind:      kind,
			ProductID: rec.ProductID,
			NameUz:    rec.NameUz,
			NameRu:    rec.NameRu,
			Price:     rec.Price,
			Qty:       rec.Qty,
			Desc:      rec.Desc,
			PhotoRef:  rec.PhotoRef,
		}
	}
	return lines, nil
}

// encodeOrderIDs сериализует список номеров заказов.
func encodeOrderIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode order ids: %w", err)
	}
	return data, nil
}

// decodeOrderIDs разбирает список номеров заказов.
func decodeOrderIDs(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode order ids: %w", err)
	}
	return ids, nil
}
