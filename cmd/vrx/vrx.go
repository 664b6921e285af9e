package vrx

const Version = "0.4.1"
