package game_constants

// Board dimensions. Rows are indexed bottom=0 to top=BOARD_ROWS-1.
const BOARD_ROWS = 6
const BOARD_COLUMNS = 7

// Number of aligned discs needed to win
const CONNECT = 4

// Elo K factor applied on every rating refresh
const ELO_K_FACTOR = 50
const ELO_SCALE = 400

// Matchmaking defaults (overridable from the environment)
const RATING_TOLERANCE = 100
const MAX_WAITING_MS = 1500

// Interval between two random-match arranging passes
const ARRANGE_INTERVAL_MS = 1000

// Socket.io room prefix for match observers
const OBSERVERS_ROOM_PREFIX = "match:"
