package imageturbo

// Version is the semantic version of the library.
const Version = "1.2.0"
