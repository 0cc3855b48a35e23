package searcher

// Hyperparameters for UCT

const CSquared = 2.0 // Exploration constant

// Rewards are read off the terminal state as 0/1 flags
const Win = 1.0
const Loss = 0.0

// DefaultIterations is the simulation budget per move decision.
const DefaultIterations = 1000
