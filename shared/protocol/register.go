package protocol

import (
	"github.com/automoto/netinterp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition    uint = 10
	SyncIDNetVelocity    uint = 11
	SyncIDNetOrientation uint = 12
	SyncIDNetScale       uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition    uint8 = 10
	InterpIDNetVelocity    uint8 = 11
	InterpIDNetOrientation uint8 = 12
	InterpIDNetScale       uint8 = 13
)

// RegisterComponents registers the remote pose components with necs so
// that worlds holding them can be serialized. The demo moves packets in
// process and never serializes a world, so this only matters to a real
// transport; the interpolation functions let esync smooth between synced
// states without an interp.Buffer.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetOrientation,
		netcomponents.NetOrientationData{},
		netcomponents.NetOrientation,
		esync.WithInterpFn(InterpIDNetOrientation, netcomponents.SlerpNetOrientation),
	); err != nil {
		return err
	}

	return esync.RegisterComponent(
		SyncIDNetScale,
		netcomponents.NetScaleData{},
		netcomponents.NetScale,
		esync.WithInterpFn(InterpIDNetScale, netcomponents.LerpNetScale),
	)
}
