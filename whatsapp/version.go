package whatsapp

// Version is the library semantic version.
const Version = "1.0.0"

// userAgent identifies this library on outgoing requests.
const userAgent = "whatsapp-go/" + Version
