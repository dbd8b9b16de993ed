package block

// Kind tags the payload a block instance carries.
type Kind string

const (
	KindBasic    Kind = "basic"
	KindStorage  Kind = "storage"
	KindFurnace  Kind = "furnace"
	KindEnhancer Kind = "enhancer"
	KindFarming  Kind = "farming"
)

func (k Kind) valid() bool {
	switch k {
	case KindBasic, KindStorage, KindFurnace, KindEnhancer, KindFarming:
		return true
	}
	return false
}

// Stateful reports whether blocks of this kind carry per-cell state.
func (k Kind) Stateful() bool {
	return k.valid() && k != KindBasic
}

// ItemStack is a counted item reference. Item ids belong to the item catalog,
// which this package does not own.
type ItemStack struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Payload is the kind-specific state of an Instance.
type Payload interface {
	Kind() Kind
}

// HasInventory is implemented by payloads that hold item stacks.
type HasInventory interface {
	Items() []ItemStack
	SetItems([]ItemStack)
}

// HasProgress is implemented by payloads that advance over time.
type HasProgress interface {
	Progress() float64
	SetProgress(float64)
}

// Instance is the mutable state attached to a single stateful cell.
type Instance struct {
	Block   ID
	Payload Payload
}

// NewInstance creates an instance with the zero payload for kind.
// It returns nil for KindBasic.
func NewInstance(id ID, kind Kind) *Instance {
	p := NewPayload(kind)
	if p == nil {
		return nil
	}
	return &Instance{Block: id, Payload: p}
}

// NewPayload returns an empty payload for kind, or nil for non-stateful kinds.
func NewPayload(kind Kind) Payload {
	switch kind {
	case KindStorage:
		return &StoragePayload{}
	case KindFurnace:
		return &FurnacePayload{}
	case KindEnhancer:
		return &EnhancerPayload{}
	case KindFarming:
		return &FarmingPayload{}
	}
	return nil
}

// Kind returns the payload kind, or KindBasic when the instance has none.
func (i *Instance) Kind() Kind {
	if i == nil || i.Payload == nil {
		return KindBasic
	}
	return i.Payload.Kind()
}

// Inventory returns the instance's inventory capability, if any.
func (i *Instance) Inventory() (HasInventory, bool) {
	if i == nil {
		return nil, false
	}
	inv, ok := i.Payload.(HasInventory)
	return inv, ok
}

// Progress returns the instance's progress capability, if any.
func (i *Instance) Progress() (HasProgress, bool) {
	if i == nil {
		return nil, false
	}
	p, ok := i.Payload.(HasProgress)
	return p, ok
}

type StoragePayload struct {
	Contents []ItemStack `json:"items"`
}

func (p *StoragePayload) Kind() Kind                 { return KindStorage }
func (p *StoragePayload) Items() []ItemStack         { return p.Contents }
func (p *StoragePayload) SetItems(items []ItemStack) { p.Contents = items }

type FurnacePayload struct {
	Slots []ItemStack `json:"items"`
	Burn  float64     `json:"progress"`
}

func (p *FurnacePayload) Kind() Kind                 { return KindFurnace }
func (p *FurnacePayload) Items() []ItemStack         { return p.Slots }
func (p *FurnacePayload) SetItems(items []ItemStack) { p.Slots = items }
func (p *FurnacePayload) Progress() float64          { return p.Burn }
func (p *FurnacePayload) SetProgress(v float64)      { p.Burn = v }

type EnhancerPayload struct {
	Slots []ItemStack `json:"items"`
	Done  float64     `json:"progress"`
}

func (p *EnhancerPayload) Kind() Kind                 { return KindEnhancer }
func (p *EnhancerPayload) Items() []ItemStack         { return p.Slots }
func (p *EnhancerPayload) SetItems(items []ItemStack) { p.Slots = items }
func (p *EnhancerPayload) Progress() float64          { return p.Done }
func (p *EnhancerPayload) SetProgress(v float64)      { p.Done = v }

type FarmingPayload struct {
	Stage  int     `json:"stage"`
	Growth float64 `json:"progress"`
}

func (p *FarmingPayload) Kind() Kind            { return KindFarming }
func (p *FarmingPayload) Progress() float64     { return p.Growth }
func (p *FarmingPayload) SetProgress(v float64) { p.Growth = v }
