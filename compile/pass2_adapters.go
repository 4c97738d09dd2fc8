package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/registry"
	"github.com/flowframe/engine/types"
)

// pass2Adapters walks every edge, classifies it with
// types.CheckTypeConnection, and for any edge that needs bridging, looks
// up a registered adapter/lens block and splices it in as a synthetic
// block instance between the two original ports. Hard incompatibilities
// are raised as errors and the edge is dropped (spec's ActionSkipEdge).
func pass2Adapters(s *compileState) {
	s.effectiveEdges = nil

	for _, e := range s.patch.Edges {
		from, okFrom := s.portTypes[e.From]
		to, okTo := s.portTypes[e.To]
		if !okFrom || !okTo {
			continue
		}

		destBlock, _ := s.patch.BlockByID(e.To.Block)
		destDef, _ := s.reg.Get(destBlock.Kind)
		allowZipSig := destDef.Broadcast == registry.BroadcastAllow

		check := types.CheckTypeConnection(from, to, allowZipSig)
		switch check.Result {
		case types.Compatible:
			s.effectiveEdges = append(s.effectiveEdges, e)

		case types.NeedsAdapter:
			cand, found := s.adapters.Find(check.Adapter)
			if !found {
				s.diags.Raise(ErrNoAdapterAvailable, diag.SeverityError,
					fmt.Sprintf("no registered adapter for %+v on edge %+v", check.Adapter, e),
					diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)}, diag.ActionSkipEdge())
				continue
			}

			lensID := s.allocInsertedID()
			lens := BlockInstance{ID: lensID, Kind: cand.BlockName}
			s.insertedLenses = append(s.insertedLenses, lens)

			lensDef, _ := s.reg.Get(cand.BlockName)
			inPort := lensDef.Inputs[0].Name
			outPort := lensDef.Outputs[0].Name

			s.portTypes[PortRef{Block: lensID, Port: inPort}] = lensDef.Inputs[0].Type
			s.portTypes[PortRef{Block: lensID, Port: outPort}] = lensDef.Outputs[0].Type

			s.effectiveEdges = append(s.effectiveEdges,
				Edge{From: e.From, To: PortRef{Block: lensID, Port: inPort}},
				Edge{From: PortRef{Block: lensID, Port: outPort}, To: e.To},
			)

			sevInfo := diag.SeverityWarning
			code := WarnContractAdapted
			if check.Adapter.Kind == types.AdapterUnitConversion || check.Adapter.Kind == types.AdapterBroadcast {
				sevInfo = diag.SeverityInfo
				code = InfoAdapterInserted
			}
			s.diags.Raise(code, sevInfo,
				fmt.Sprintf("inserted %s on edge %+v", cand.BlockName, e),
				diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)},
				diag.ActionAddAdapter(cand.BlockName, check.Adapter.FromUnit.String(), check.Adapter.ToUnit.String()))

		case types.Incompatible:
			code := ErrPayloadMismatch
			switch check.Reason {
			case types.CardinalityMismatch:
				code = ErrCardinalityMismatch
			case types.ExtentMismatch:
				code = ErrExtentMismatch
			}
			s.diags.Raise(code, diag.SeverityError,
				fmt.Sprintf("incompatible connection on edge %+v: %s", e, check.Reason),
				diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)}, diag.ActionSkipEdge())
		}
	}

	s.patch.Blocks = append(s.patch.Blocks, s.insertedLenses...)
}
