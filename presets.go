package curves

import "fmt"

// Built-in presets, matching the curve presets of the classic curves
// video filter. Index 0 means no preset. A preset only supplies defaults
// for channel slots the caller left unspecified.
const (
	PresetNone = iota
	PresetColorNegative
	PresetCrossProcess
	PresetDarker
	PresetIncreaseContrast
	PresetLighter
	PresetLinearContrast
	PresetMediumContrast
	PresetNegative
	PresetStrongContrast
	PresetVintage
	numPresets
)

// presetDefaults holds the default curve of each channel slot, in the
// delimited string syntax. Empty means the preset does not touch that
// slot.
var presetDefaults = [numPresets][numSlots]string{
	PresetColorNegative: {
		SlotPlane0: "0.129/1 0.466/0.498 0.725/0",
		SlotPlane1: "0.109/1 0.301/0.498 0.517/0",
		SlotPlane2: "0.098/1 0.235/0.498 0.423/0",
	},
	PresetCrossProcess: {
		SlotPlane0: "0/0 0.25/0.156 0.501/0.501 0.686/0.745 1/1",
		SlotPlane1: "0/0 0.25/0.188 0.38/0.501 0.745/0.815 1/0.815",
		SlotPlane2: "0/0 0.231/0.094 0.709/0.874 1/1",
	},
	PresetDarker: {
		SlotMaster: "0/0 0.5/0.4 1/1",
	},
	PresetIncreaseContrast: {
		SlotMaster: "0/0 0.149/0.066 0.831/0.905 0.905/0.98 1/1",
	},
	PresetLighter: {
		SlotMaster: "0/0 0.4/0.5 1/1",
	},
	PresetLinearContrast: {
		SlotMaster: "0/0 0.305/0.286 0.694/0.713 1/1",
	},
	PresetMediumContrast: {
		SlotMaster: "0/0 0.286/0.219 0.639/0.643 1/1",
	},
	PresetNegative: {
		SlotMaster: "0/1 1/0",
	},
	PresetStrongContrast: {
		SlotMaster: "0/0 0.301/0.196 0.592/0.6 0.686/0.737 1/1",
	},
	PresetVintage: {
		SlotPlane0: "0/0.11 0.42/0.51 1/0.95",
		SlotPlane1: "0/0 0.50/0.48 1/1",
		SlotPlane2: "0/0.22 0.49/0.44 1/0.8",
	},
}

var presetNames = [numPresets]string{
	PresetNone:             "none",
	PresetColorNegative:    "color_negative",
	PresetCrossProcess:     "cross_process",
	PresetDarker:           "darker",
	PresetIncreaseContrast: "increase_contrast",
	PresetLighter:          "lighter",
	PresetLinearContrast:   "linear_contrast",
	PresetMediumContrast:   "medium_contrast",
	PresetNegative:         "negative",
	PresetStrongContrast:   "strong_contrast",
	PresetVintage:          "vintage",
}

// PresetByName resolves a preset name as used by the classic filter.
func PresetByName(name string) (int, error) {
	for i, n := range presetNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown preset %q", ErrInvalidPreset, name)
}

// PresetName returns the canonical name of a preset index.
func PresetName(preset int) string {
	if preset < 0 || preset >= numPresets {
		return ""
	}
	return presetNames[preset]
}
