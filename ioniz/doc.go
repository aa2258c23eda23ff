// Package ioniz models Ionization and PrecursorIonType: the charge-carrying
// mass adjustments that relate a neutral molecular formula to an observed
// ion m/z. NeutralToIonMass and IonToNeutralMass are exact inverses up to
// floating-point rounding (§8, invariant 5).
package ioniz
