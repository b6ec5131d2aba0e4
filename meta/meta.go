// meta/meta.go
package meta

// BOARD_SIZE defines the default number of rows and columns of a board.
const BOARD_SIZE = 10

// MAX_BOARD_SIZE defines the largest board whose columns can be named with one letter.
const MAX_BOARD_SIZE = 26

// MAX_SHIP_SIZE defines the largest ship a fleet may contain.
const MAX_SHIP_SIZE = 4

// SHIP_ATTEMPTS defines how many random positions are tried for one ship.
const SHIP_ATTEMPTS = 50

// FLEET_ATTEMPTS defines how many times a whole fleet is laid out before giving up.
const FLEET_ATTEMPTS = 1000

// MIN_BOT_DELAY_MS defines the default lower bound of the bot's pause before a shot.
const MIN_BOT_DELAY_MS = 300

// MAX_BOT_DELAY_MS defines the default upper bound of the bot's pause before a shot.
const MAX_BOT_DELAY_MS = 1200
