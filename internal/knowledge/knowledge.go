// Package knowledge holds the static filament knowledge base fed to the
// advisor's system instruction.
package knowledge

// Base is the internal cheat sheet the advisor grounds its answers on.
const Base = `
# STORE INFORMATION (3dprintergear.com.au)
- Location: Australian owned and operated.
- Shipping: fast shipping Australia-wide.
- Core Focus: High-quality 3D printers, filaments, and parts.

# FILAMENT GUIDE & CHEAT SHEET

## PLA (Polylactic Acid)
- Best For: Beginners, decorative models, prototyping, low-stress parts.
- Pros: Easy to print, huge color variety, biodegradable, low warping.
- Cons: Brittle, low heat resistance (deforms ~55C), not for outdoors.
- Top Brands: eSun PLA+, Polymaker PolyLite, Sunlu.

## PETG (Polyethylene Terephthalate Glycol)
- Best For: Functional parts, mechanical components, outdoor planters.
- Pros: Durable, slight flex, UV resistant, higher heat resistance (~75C).
- Cons: Stringing can be an issue, absorbs moisture (hygroscopic).
- Top Brands: eSun PETG, Polymaker PolyLite PETG.

## ABS / ASA
- Best For: Automotive parts, high-stress functional parts, outdoor use (ASA).
- Pros: Very strong, high heat resistance (~100C), smoothable with acetone (ABS).
- Cons: Warps heavily (requires enclosure), produces fumes (ventilation needed).
- Top Brands: Polymaker PolyLite ASA, eSun ABS+.

## TPU (Flexible)
- Best For: Phone cases, vibration dampeners, tires, seals.
- Pros: Flexible, indestructible impact resistance.
- Cons: Difficult to print on Bowden setups (direct drive recommended).

## Carbon Fiber (CF) Blends (PLA-CF, PETG-CF, PA-CF)
- Best For: Engineering parts requiring stiffness and matte surface finish.
- Note: Abrasive! Requires a hardened steel nozzle.

# TROUBLESHOOTING KNOWLEDGE
- Bed Adhesion Issues: Clean bed with IPA, check Z-offset, use glue stick or PEI sheet.
- Stringing: Dry the filament, increase retraction settings, lower temp slightly.
- Clogging: Check for heat creep, ensure nozzle isn't too close to bed, perform cold pull.
`
