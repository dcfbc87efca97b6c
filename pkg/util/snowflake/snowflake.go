package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init initializes the snowflake node. Call once at startup.
// Ids generated afterwards are strictly increasing within this process, so
// message ids double as an arrival-order sequence and never collide under
// high send rates the way timestamp+random ids can.
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			machineID = 1
			zap.L().Warn("invalid machineId in config, using default value 1")
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("failed to initialize snowflake node", zap.Error(err))
		}
		zap.L().Info("snowflake node initialized", zap.Int64("machineID", machineID))
	})
}

// GenerateID generates a snowflake id as int64.
func GenerateID() int64 {
	if node == nil {
		Init(1)
	}
	return node.Generate().Int64()
}

// GenerateIDString generates a snowflake id as string.
// Used for JSON payloads to avoid JavaScript number precision loss.
func GenerateIDString() string {
	if node == nil {
		Init(1)
	}
	return node.Generate().String()
}
