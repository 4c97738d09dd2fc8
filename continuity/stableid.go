package continuity

import "fmt"

// DeriveStableTargetID computes the StableTargetID for an authored
// target: the output named port of block blockID, on instance
// instanceName. Deterministic in block role + port name (not in BlockId's
// internal numbering) so that a recompile that preserves the author's
// block/port naming produces the same key even though internal ids were
// reassigned, per spec §3.5.
func DeriveStableTargetID(blockRole, portName, instanceName string) StableTargetID {
	return StableTargetID(fmt.Sprintf("%s.%s@%s", blockRole, portName, instanceName))
}
