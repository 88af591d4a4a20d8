package lightbox

// Version is the lightbox release version.
const Version = "0.1.0"
