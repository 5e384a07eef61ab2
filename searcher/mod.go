package searcher

import "snakeflip/meta"

// Hyperparameters for MCTS

// Default exploration constant, c in q/n + c*sqrt(ln(N)/n)
var DefaultExploration = meta.EXPLORATION

// Visits added to a node while a worker is below it, discouraging
// other workers from descending the same line
const VirtualLoss = 1

// Default initial node capacity of the transposition table
const DefaultTableCapacity = 1 << 16
