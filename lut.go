package curves

// Channel slots. The three planes come first, the master curve occupies
// the last slot and is applied on top of the per-plane tables.
const (
	SlotPlane0 = iota
	SlotPlane1
	SlotPlane2
	SlotMaster
	numSlots
)

// composeLUTs rewrites each channel table so that looking it up performs
// the channel curve followed by the master curve.
func composeLUTs(channel [][]uint16, master []uint16) {
	for _, lut := range channel {
		for j, v := range lut {
			lut[j] = master[v]
		}
	}
}
