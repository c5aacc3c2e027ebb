package constants

// Centralized constants for env keys, headers, routes and messages.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"

	// HTTP headers and content types
	HeaderPlayerID    = "X-Player-ID"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteWeapons      = "/weapons"
	RouteProfile      = "/profile"
	RouteTeamByID     = "/teams/:teamID"
	RouteRooms        = "/rooms"
	RouteRoomsJoin    = "/rooms/join"
	RouteRoomByID     = "/rooms/:roomID"
	RouteRoomBattle   = "/rooms/:roomID/battle"
	RouteRoomAttack   = "/rooms/:roomID/attack"
	RouteRoomEndTurn  = "/rooms/:roomID/end-turn"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidRoomID   = "Invalid room ID"
	ErrInvalidTeamID   = "Invalid team ID"
	ErrInvalidRoomCode = "Invalid room code"
	ErrIdentityReq     = "Player identity required"

	ErrRoomNotFound       = "Room not found"
	ErrRoomAlreadyFull    = "Room is already full"
	ErrCannotJoinOwnRoom  = "Cannot join your own room"
	ErrTeamNotFound       = "Team not found"
	ErrProfileNotFound    = "Player profile not found"
	ErrTeamNotBattleReady = "Team is not battle-ready"
	ErrNotYourTurn        = "It is not your turn"
	ErrAlreadyAttacked    = "Character has already attacked this turn"
	ErrInvalidTarget      = "Invalid attack target"
	ErrBattleOver         = "Battle is already concluded"
	ErrNotInRoom          = "Player is not a participant of this room"

	ErrFailedCreateRoom  = "Failed to create room"
	ErrFailedJoinRoom    = "Failed to join room"
	ErrFailedCancelRoom  = "Failed to cancel room"
	ErrFailedFetchTeam   = "Failed to fetch team"
	ErrFailedFetchState  = "Failed to fetch battle state"
	ErrInternal          = "Internal error"
)

// Logging field names
const (
	LogFieldRoomID   = "room_id"
	LogFieldRoomCode = "room_code"
	LogFieldUserID   = "user_id"
	LogFieldTeamID   = "team_id"
	LogFieldHostID   = "host_id"
	LogFieldJoinerID = "joiner_id"
	LogFieldWorkerID = "worker_id"
	LogFieldAddr     = "addr"
)
