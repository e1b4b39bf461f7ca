package lci

// SwitchState is the position of a switch relay.
type SwitchState int

const (
	SwitchOff SwitchState = iota
	SwitchOn
)

var switchStates = vocabulary[SwitchState]{
	kind: "switch state",
	terms: []term[SwitchState]{
		{SwitchOff, "OFF", "Off"},
		{SwitchOn, "ON", "On"},
	},
}

func ParseSwitchState(s string) (SwitchState, error) { return switchStates.parse(s) }

func SwitchStates() []SwitchState { return switchStates.values() }

func (s SwitchState) String() string { return switchStates.label(s) }

func (s SwitchState) Value() string {
	v, _ := switchStates.wire(s)
	return v
}

// GeneratorState is the run state reported by a generator.
type GeneratorState int

const (
	GeneratorOff GeneratorState = iota
	GeneratorPriming
	GeneratorStarting
	GeneratorRunning
)

var generatorStates = vocabulary[GeneratorState]{
	kind: "generator state",
	terms: []term[GeneratorState]{
		{GeneratorOff, "OFF", "Off"},
		{GeneratorPriming, "PRIMING", "Priming"},
		{GeneratorStarting, "STARTING", "Starting"},
		{GeneratorRunning, "RUNNING", "Running"},
	},
}

func ParseGeneratorState(s string) (GeneratorState, error) { return generatorStates.parse(s) }

func GeneratorStates() []GeneratorState { return generatorStates.values() }

func (s GeneratorState) String() string { return generatorStates.label(s) }

func (s GeneratorState) Value() string {
	v, _ := generatorStates.wire(s)
	return v
}

// HvacFanMode is the fan setting of an HVAC unit.
type HvacFanMode int

const (
	HvacFanAuto HvacFanMode = iota
	HvacFanLow
	HvacFanHigh
)

var hvacFanModes = vocabulary[HvacFanMode]{
	kind: "hvac fan mode",
	terms: []term[HvacFanMode]{
		{HvacFanAuto, "AUTO", "Auto"},
		{HvacFanLow, "LOW", "Low"},
		{HvacFanHigh, "HIGH", "High"},
	},
}

func ParseHvacFanMode(s string) (HvacFanMode, error) { return hvacFanModes.parse(s) }

func HvacFanModes() []HvacFanMode { return hvacFanModes.values() }

func (m HvacFanMode) String() string { return hvacFanModes.label(m) }

func (m HvacFanMode) Value() string {
	v, _ := hvacFanModes.wire(m)
	return v
}

// HvacMode is the operating mode of an HVAC unit.
type HvacMode int

const (
	HvacModeOff HvacMode = iota
	HvacModeHeat
	HvacModeCool
	HvacModeHeatCool
)

var hvacModes = vocabulary[HvacMode]{
	kind: "hvac mode",
	terms: []term[HvacMode]{
		{HvacModeOff, "OFF", "Off"},
		{HvacModeHeat, "HEAT", "Heat"},
		{HvacModeCool, "COOL", "Cool"},
		{HvacModeHeatCool, "HEATCOOL", "HeatCool"},
	},
}

func ParseHvacMode(s string) (HvacMode, error) { return hvacModes.parse(s) }

func HvacModes() []HvacMode { return hvacModes.values() }

func (m HvacMode) String() string { return hvacModes.label(m) }

func (m HvacMode) Value() string {
	v, _ := hvacModes.wire(m)
	return v
}

// HvacStatus is what an HVAC unit is currently doing. The Fail variants
// mirror the normal ones and indicate a fault.
type HvacStatus int

const (
	HvacStatusOff HvacStatus = iota
	HvacStatusIdle
	HvacStatusCooling
	HvacStatusHeatPump
	HvacStatusElecFurnace
	HvacStatusGasFurnace
	HvacStatusGasOverride
	HvacStatusDeadTime
	HvacStatusLoadShedding
	HvacStatusFailOff
	HvacStatusFailIdle
	HvacStatusFailCooling
	HvacStatusFailHeatPump
	HvacStatusFailElecFurnace
	HvacStatusFailGasFurnace
	HvacStatusFailGasOverride
	HvacStatusFailDeadTime
	HvacStatusFailShedding
)

var hvacStatuses = vocabulary[HvacStatus]{
	kind: "hvac status",
	terms: []term[HvacStatus]{
		{HvacStatusOff, "OFF", "Off"},
		{HvacStatusIdle, "IDLE", "Idle"},
		{HvacStatusCooling, "COOLING", "Cooling"},
		{HvacStatusHeatPump, "HEAT_PUMP", "Heat Pump"},
		{HvacStatusElecFurnace, "ELEC_FURNACE", "Elec Furnace"},
		{HvacStatusGasFurnace, "GAS_FURNACE", "Gas Furnace"},
		{HvacStatusGasOverride, "GAS_OVERRIDE", "Gas Override"},
		{HvacStatusDeadTime, "DEAD_TIME", "Dead Time"},
		{HvacStatusLoadShedding, "LOAD_SHEDDING", "Load Shedding"},
		{HvacStatusFailOff, "FAIL_OFF", "Fail Off"},
		{HvacStatusFailIdle, "FAIL_IDLE", "Fail Idle"},
		{HvacStatusFailCooling, "FAIL_COOLING", "Fail Cooling"},
		{HvacStatusFailHeatPump, "FAIL_HEAT_PUMP", "Fail Heat Pump"},
		{HvacStatusFailElecFurnace, "FAIL_ELEC_FURNACE", "Fail Elec Furnace"},
		{HvacStatusFailGasFurnace, "FAIL_GAS_FURNACE", "Fail Gas Furnace"},
		{HvacStatusFailGasOverride, "FAIL_GAS_OVERRIDE", "Fail Gas Override"},
		{HvacStatusFailDeadTime, "FAIL_DEAD_TIME", "Fail Dead Time"},
		{HvacStatusFailShedding, "FAIL_SHEDDING", "Fail Shedding"},
	},
}

func ParseHvacStatus(s string) (HvacStatus, error) { return hvacStatuses.parse(s) }

func HvacStatuses() []HvacStatus { return hvacStatuses.values() }

func (s HvacStatus) String() string { return hvacStatuses.label(s) }

func (s HvacStatus) Value() string {
	v, _ := hvacStatuses.wire(s)
	return v
}

// IsFailure reports whether the unit is in a fault state.
func (s HvacStatus) IsFailure() bool {
	return s >= HvacStatusFailOff && s <= HvacStatusFailShedding
}
