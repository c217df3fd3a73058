package config

// Reset lets tests drop the Load cache.
var Reset = reset
