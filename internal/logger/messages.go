package logger

const LevelChangedMsg = "log level changed to %s"

const MatchStartedMsg = "match started at %d Hz, timestep %v"
const MatchStoppedMsg = "match stopped after %d frames"
const GoalMsg = "%s scored, %d x %d"
const MatchWonMsg = "%s won the match %d x %d"
const CollisionMsg = "%s"

const ServerListeningMsg = "listening on %s%s"
const ServerStoppedMsg = "server stopped"
const ServerFailedMsg = "server failed"
const ClientJoinedMsg = "client joined as %s"
const ClientLeftMsg = "client left"
const SlotTakenMsg = "rejected client, %s slot is taken"
const BadRoleMsg = "rejected client, unknown role %q"
const BadInputMsg = "dropping malformed input frame"
const BadFrameMsg = "skipping undecodable snapshot frame"
const SendDroppedMsg = "send queue full, dropping snapshot"
const EncodeFailedMsg = "dropping frame %d, encoding failed"
const ConnBrokenMsg = "connection lost"

const BotEnabledMsg = "computer plays %s, skill %.2f"
const ConfigReloadedMsg = "config file changed"
const BadLevelMsg = "keeping the current log level"
const WatchSkippedMsg = "not watching the config file"
