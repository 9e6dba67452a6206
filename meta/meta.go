// meta/meta.go
package meta

// MAX_ROUNDS defines the round limit after which a game is a draw.
const MAX_ROUNDS = 50

// GAMES defines the number of self-play games per experiment.
const GAMES = 20

// WORKERS defines the number of games played concurrently.
const WORKERS = 4
