package wire

import (
	"fmt"
	"math/big"
	"time"

	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/value"
)

// extractMeta peels a value.WithMeta wrapper off v, reporting whether one
// was present (spec.md §4.3 rule 1).
func extractMeta(v any) (meta map[any]any, inner any, ok bool) {
	wm, ok := v.(value.WithMeta)
	if !ok || len(wm.Meta) == 0 {
		return nil, nil, false
	}

	return wm.Meta, wm.Value, true
}

func (w *Writer) freezeWithMeta(meta map[any]any, inner any) error {
	w.WriteByte(byte(format.MetaTag))
	if err := w.Freeze(meta); err != nil {
		return fmt.Errorf("wire: writing metadata: %w", err)
	}

	return w.Freeze(inner)
}

// freezeConcrete dispatches v by its concrete Go type to the matching
// variant encoder (spec.md §4.3 rule 2, the table in spec.md §3). ok is
// false when no concrete variant matches, signaling the caller to try the
// fallback chain.
func (w *Writer) freezeConcrete(v any) (ok bool, err error) {
	switch val := v.(type) {
	case nil:
		w.WriteByte(byte(format.Nil))
		return true, nil
	case bool:
		return true, w.freezeBool(val)
	case value.Char:
		return true, w.freezeChar(val)

	case int8:
		return true, w.freezeByte(val)
	case int16:
		return true, w.freezeShort(val)
	case int32:
		return true, w.freezeInt(val)
	case int64:
		return true, w.freezeLong(val)
	case int:
		return true, w.freezeLong(int64(val))

	case float32:
		return true, w.freezeFloat(val)
	case float64:
		return true, w.freezeDouble(val)

	case *big.Int:
		return true, w.freezeBigInt(val)
	case *big.Rat:
		return true, w.freezeRatio(value.Ratio{Numerator: val.Num(), Denominator: val.Denom()})
	case value.Ratio:
		return true, w.freezeRatio(val)
	case value.BigDecimal:
		return true, w.freezeBigDecimal(val)

	case string:
		return true, w.freezeString(val)
	case value.Keyword:
		return true, w.freezeKeyword(val)
	case value.Symbol:
		return true, w.freezeSymbol(val)
	case value.Regex:
		return true, w.freezeRegex(val)

	case []byte:
		return true, w.freezeBytes(val)

	case []any:
		return true, w.freezeVector(val)
	case value.List:
		return true, w.freezeCountedCollection(format.ListSm, format.ListMd, format.ListLg, []any(val))
	case value.Set:
		return true, w.freezeCountedCollection(format.SetSm, format.SetMd, format.SetLg, []any(val))
	case value.SortedSet:
		return true, w.freezeCountedCollection(format.SortedSetSm, format.SortedSetMd, format.SortedSetLg, []any(val))
	case value.Queue:
		return true, w.freezeCountedCollection(format.QueueSm, format.QueueMd, format.QueueLg, []any(val))
	case value.Seq:
		return true, w.freezeSeq(val)

	case map[any]any:
		return true, w.freezeMap(val)
	case value.SortedMap:
		return true, w.freezeSortedMap(val)

	case value.UUID:
		return true, w.freezeUUID(val)
	case value.Record:
		return true, w.freezeRecord(val)
	case time.Time:
		return true, w.freezeDate(val)

	default:
		if id, fn, found := lookupCustomEncoder(v); found {
			return true, w.freezeCustom(id, fn, v)
		}

		return false, nil
	}
}
