// Package fuel holds the burning-fuel economy: a fixed grid of fuel cells that
// decay every tick and pay energy into a balance used to buy more fuel.
package fuel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned when a fuel name does not match any kind.
	ErrUnknownKind = errors.New("unknown fuel kind")
	// ErrNotPurchasable is returned when placing a kind that cannot be bought.
	ErrNotPurchasable = errors.New("fuel kind is not purchasable")
)

// Kind enumerates the materials a cell can hold.
type Kind uint8

const (
	None Kind = iota
	Wood
)

type kindInfo struct {
	name          string
	maxDurability uint32
	energy        float64
	price         float64
}

var kindTable = [...]kindInfo{
	None: {name: "none"},
	Wood: {name: "wood", maxDurability: 100, energy: 10, price: 80},
}

func (k Kind) info() kindInfo {
	if int(k) >= len(kindTable) {
		return kindInfo{name: fmt.Sprintf("kind(%d)", k)}
	}
	return kindTable[k]
}

func (k Kind) String() string { return k.info().name }

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return int(k) < len(kindTable) }

// MaxDurability is the durability of a freshly placed unit.
func (k Kind) MaxDurability() uint32 { return k.info().maxDurability }

// EnergyPerTick is the balance credited each tick the unit burns.
func (k Kind) EnergyPerTick() float64 { return k.info().energy }

// Price is the balance deducted when the unit is bought.
func (k Kind) Price() float64 { return k.info().price }

// Purchasable reports whether k can be placed on the grid.
func (k Kind) Purchasable() bool { return k != None && k.Valid() }

// ParseKind resolves a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, spec := range kindTable {
		if spec.name == name {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds lists every purchasable kind.
func Kinds() []Kind {
	var out []Kind
	for i := range kindTable {
		if k := Kind(i); k.Purchasable() {
			out = append(out, k)
		}
	}
	return out
}

// Fuel is the content of one grid cell.
type Fuel struct {
	Kind       Kind
	Durability uint32
}

// New returns a full-durability unit of kind.
func New(kind Kind) Fuel {
	return Fuel{Kind: kind, Durability: kind.MaxDurability()}
}

// Empty reports whether the cell holds no fuel.
func (f Fuel) Empty() bool { return f.Kind == None }

// Ratio is the remaining durability as a fraction of the kind's maximum.
func (f Fuel) Ratio() float64 {
	limit := f.Kind.MaxDurability()
	if limit == 0 {
		return 0
	}
	return float64(f.Durability) / float64(limit)
}

func (f Fuel) String() string {
	return fmt.Sprintf("{%s %d}", f.Kind, f.Durability)
}
