package usecase

// PathOf is exported for testing
var PathOf = pathOf
